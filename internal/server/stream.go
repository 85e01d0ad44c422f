package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/agbru/chainorder/internal/chain"
	"github.com/agbru/chainorder/internal/config"
	"github.com/agbru/chainorder/internal/logging"
)

const (
	// Automatic pacing: long traces are revealed faster.
	streamDelayShort     = 20 * time.Millisecond
	streamDelayLong      = 50 * time.Millisecond
	streamLongTraceLines = 50

	streamWriteWait = 10 * time.Second
)

// autoStreamDelay returns the pause between lines for a trace of n lines.
func autoStreamDelay(n int) time.Duration {
	if n > streamLongTraceLines {
		return streamDelayShort
	}
	return streamDelayLong
}

// parseStreamDelay reads the 'delay' query parameter. An empty value falls
// back to the configured default; zero means automatic pacing.
func parseStreamDelay(raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid 'delay' parameter %q: %w", raw, err)
	}
	if d < 0 || d > config.MaxStreamDelay {
		return 0, fmt.Errorf("invalid 'delay' parameter %q: must be between 0 and %s", raw, config.MaxStreamDelay)
	}
	return d, nil
}

// handleStream upgrades GET /matrix-chain/stream to a websocket, solves the
// chain given by the 'dims' query parameter and reveals the trace one line
// at a time, followed by the full result.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error.
		s.logger.Warn("websocket upgrade failed", logging.Err(err),
			logging.String("request_id", RequestIDFromContext(r.Context())))
		return
	}
	defer conn.Close()

	// Reading is required to notice the client going away.
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	query := r.URL.Query()
	delay, err := parseStreamDelay(query.Get("delay"), s.streamDelay)
	if err != nil {
		s.streamError(conn, err)
		return
	}
	dims, err := chain.SplitDimensions(query.Get("dims"))
	if err != nil {
		s.streamError(conn, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()
	result, err := s.service.Solve(ctx, query.Get("algo"), dims)
	if err != nil {
		s.streamError(conn, err)
		return
	}

	lines := result.Lines()
	pace, stop := s.streamPacer(delay, len(lines))
	defer stop()
	deadline, stopDeadline := s.streamDeadline()
	defer stopDeadline()

	for i, line := range lines {
		if i > 0 {
			select {
			case <-pace:
			case <-deadline:
				pace, deadline = flushNow, nil
			case <-readDone:
				return
			case <-s.done:
				closeStream(conn, websocket.CloseGoingAway, "server shutting down")
				return
			}
		}
		msg := StreamMessage{Index: i, Kind: chain.ClassifyLine(line).String(), Line: line}
		if err := writeStreamMessage(conn, msg); err != nil {
			return
		}
	}

	resp := result.Response()
	if err := writeStreamMessage(conn, StreamMessage{Index: len(lines), Kind: StreamKindResult, Result: &resp}); err != nil {
		return
	}
	closeStream(conn, websocket.CloseNormalClosure, "")
}

// flushNow is a closed channel: receiving from it never blocks.
var flushNow = func() <-chan time.Time {
	ch := make(chan time.Time)
	close(ch)
	return ch
}()

// streamPacer returns the channel gating each line after the first. The
// delay is shortened so that the given number of lines fits in StreamTimeout.
func (s *Server) streamPacer(delay time.Duration, lines int) (<-chan time.Time, func()) {
	if delay == 0 {
		delay = autoStreamDelay(lines)
	}
	if budget := s.timeouts.StreamTimeout; budget > 0 && lines > 1 {
		if limit := budget / time.Duration(lines); delay > limit {
			delay = limit
		}
	}
	if delay <= 0 {
		return flushNow, func() {}
	}
	ticker := time.NewTicker(delay)
	return ticker.C, ticker.Stop
}

// streamDeadline fires once StreamTimeout has elapsed. A nil channel never
// fires.
func (s *Server) streamDeadline() (<-chan time.Time, func()) {
	if s.timeouts.StreamTimeout <= 0 {
		return nil, func() {}
	}
	timer := time.NewTimer(s.timeouts.StreamTimeout)
	return timer.C, func() { timer.Stop() }
}

// streamError sends an error frame and closes the socket.
func (s *Server) streamError(conn *websocket.Conn, err error) {
	if statusForError(err) >= http.StatusInternalServerError {
		s.logger.Error("stream solve failed", err)
	}
	if writeStreamMessage(conn, StreamMessage{Kind: StreamKindError, Message: err.Error()}) == nil {
		closeStream(conn, websocket.ClosePolicyViolation, "invalid request")
	}
}

func writeStreamMessage(conn *websocket.Conn, msg StreamMessage) error {
	if err := conn.SetWriteDeadline(time.Now().Add(streamWriteWait)); err != nil {
		return err
	}
	return conn.WriteJSON(msg)
}

func closeStream(conn *websocket.Conn, code int, text string) {
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, text), time.Now().Add(time.Second))
}

package server

import (
	"encoding/json"

	"github.com/agbru/chainorder/internal/chain"
)

// SolveRequest is the body accepted by POST /matrix-chain. Dimensions are
// kept as raw JSON so that each element can be checked individually and a
// non-numeric entry reported as invalid input rather than a decoding error.
type SolveRequest struct {
	Dimensions []json.RawMessage `json:"dimensions"`
}

// ErrorResponse represents the standardized JSON response for an API error.
type ErrorResponse struct {
	// Error is the short error code or status text.
	Error string `json:"error"`
	// Message is a descriptive error message.
	Message string `json:"message,omitempty"`
}

// HealthResponse is returned by GET / and GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp int64  `json:"timestamp"`
}

// AlgorithmsResponse is returned by GET /algorithms.
type AlgorithmsResponse struct {
	Algorithms []string `json:"algorithms"`
	Default    string   `json:"default"`
}

// Stream message kinds besides the trace kinds.
const (
	StreamKindResult = "result"
	StreamKindError  = "error"
)

// StreamMessage is one websocket frame sent by /matrix-chain/stream. Trace
// frames carry Index, Kind and Line; the final frame carries Result or
// Message.
type StreamMessage struct {
	Index   int             `json:"index"`
	Kind    string          `json:"kind"`
	Line    string          `json:"line,omitempty"`
	Result  *chain.Response `json:"result,omitempty"`
	Message string          `json:"message,omitempty"`
}

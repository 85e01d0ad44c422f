package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	stdlog "log"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestZerologAdapter_Fields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewZerologAdapter(zerolog.New(&buf))

	logger.Info("solved",
		String("algo", "bottomup"),
		Int("n", 3),
		Float64("cost", 4500),
		Bool("trace", true),
		Dims("dims", []float64{10, 30, 5, 60}),
		Duration("took", 2*time.Millisecond),
	)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON log line %q: %v", buf.String(), err)
	}
	if entry["level"] != "info" || entry["message"] != "solved" {
		t.Errorf("unexpected entry %v", entry)
	}
	if entry["algo"] != "bottomup" || entry["n"] != 3.0 || entry["cost"] != 4500.0 || entry["trace"] != true {
		t.Errorf("fields not encoded: %v", entry)
	}
	dims, ok := entry["dims"].([]any)
	if !ok || len(dims) != 4 {
		t.Errorf("dims = %v, want 4 values", entry["dims"])
	}
}

func TestZerologAdapter_Levels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.DebugLevel))

	logger.Warn("slow request")
	logger.Debug("details", Err(errors.New("x")))
	logger.Error("failed", errors.New("boom"))
	logger.Printf("listening on %s", ":8080")
	logger.Println("done")

	out := buf.String()
	for _, want := range []string{`"level":"warn"`, `"level":"debug"`, `"error":"boom"`, "listening on :8080", "done"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestNewLogger_Component(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewLogger(&buf, "server").Info("up")
	if !strings.Contains(buf.String(), `"component":"server"`) {
		t.Errorf("component missing: %s", buf.String())
	}
	if NewDefaultLogger() == nil {
		t.Error("NewDefaultLogger returned nil")
	}
}

func TestStdLoggerAdapter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewStdLoggerAdapter(stdlog.New(&buf, "", 0))

	logger.Info("a")
	logger.Info("b", Int("n", 1))
	logger.Warn("c")
	logger.Debug("d")
	logger.Error("e", errors.New("boom"))

	out := buf.String()
	for _, want := range []string{"[INFO] a", "[INFO] b", "[WARN] c", "[DEBUG] d", "[ERROR] e: boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/agbru/chainorder/internal/chain"
	apperrors "github.com/agbru/chainorder/internal/errors"
	"github.com/agbru/chainorder/internal/logging"
)

const (
	// maxBodyBytes bounds the size of a solve request body.
	maxBodyBytes = 1 << 20

	serviceName = "Matrix Chain Multiplication DP"

	msgDimensionsRequired = "Invalid input. 'dimensions' list is required."
	msgDimensionsNotList  = "Dimensions must be a list of at least 2 numbers."
)

// handleHealth responds to health check requests on GET / and GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/health" {
		s.writeErrorResponse(w, http.StatusNotFound, "Unknown endpoint "+r.URL.Path)
		return
	}
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	s.writeJSONResponse(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   serviceName,
		Timestamp: time.Now().Unix(),
	})
}

// handleAlgorithms returns the names of the registered solving strategies.
func (s *Server) handleAlgorithms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	s.writeJSONResponse(w, http.StatusOK, AlgorithmsResponse{
		Algorithms: s.service.Algorithms(),
		Default:    chain.DefaultAlgorithm,
	})
}

// handleSolve processes POST /matrix-chain. The optional query parameter
// 'algo' selects the strategy.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	dims, err := decodeSolveRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeErrorResponse(w, statusForError(err), err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	algo := r.URL.Query().Get("algo")
	start := time.Now()
	result, err := s.service.Solve(ctx, algo, dims)
	duration := time.Since(start)
	if err != nil {
		status := statusForError(err)
		if status >= http.StatusInternalServerError {
			s.logger.Error("solve failed", err,
				logging.String("request_id", RequestIDFromContext(r.Context())),
				logging.Int("matrices", len(dims)-1))
		}
		s.writeErrorResponse(w, status, err.Error())
		return
	}

	w.Header().Set("X-Solve-Duration", duration.String())
	s.writeJSONResponse(w, http.StatusOK, result.Response())
}

// decodeSolveRequest reads a SolveRequest and converts its elements into a
// dimension sequence. Validation beyond "is a number" is left to the solver.
func decodeSolveRequest(body io.Reader) ([]float64, error) {
	var req SolveRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &maxErr):
			return nil, requestError{status: http.StatusRequestEntityTooLarge, message: "Request body too large"}
		case errors.As(err, &typeErr) && typeErr.Field == "dimensions":
			return nil, apperrors.NewValidationError("dimensions", msgDimensionsNotList, typeErr.Value)
		default:
			return nil, apperrors.NewValidationError("dimensions", msgDimensionsRequired, nil)
		}
	}
	if req.Dimensions == nil {
		return nil, apperrors.NewValidationError("dimensions", msgDimensionsRequired, nil)
	}
	return decodeDimensions(req.Dimensions)
}

// decodeDimensions converts raw JSON elements to numbers. null, strings,
// booleans and nested values are reported as chain.ReasonNotANumber.
func decodeDimensions(raw []json.RawMessage) ([]float64, error) {
	dims := make([]float64, len(raw))
	for i, elem := range raw {
		trimmed := bytes.TrimSpace(elem)
		if bytes.Equal(trimmed, []byte("null")) || json.Unmarshal(trimmed, &dims[i]) != nil {
			return nil, &chain.DimensionError{Reason: chain.ReasonNotANumber, Index: i, Value: string(trimmed)}
		}
	}
	return dims, nil
}

// requestError is a transport-level failure carrying its own status.
type requestError struct {
	status  int
	message string
}

func (e requestError) Error() string { return e.message }

// statusForError maps request and solve errors to HTTP status codes.
func statusForError(err error) int {
	var reqErr requestError
	var validationErr apperrors.ValidationError
	var unknown *chain.UnknownSolverError
	switch {
	case errors.As(err, &reqErr):
		return reqErr.status
	case errors.As(err, &validationErr),
		errors.Is(err, chain.ErrInvalidDimensions),
		errors.As(err, &unknown):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeJSONResponse helper function to write a JSON response with the correct content type.
//
// Parameters:
//   - w: The HTTP response writer.
//   - statusCode: The HTTP status code to write.
//   - data: The data to be encoded as JSON.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		s.logger.Error("encoding JSON response", err, logging.Int("status", statusCode))
		buf.Reset()
		statusCode = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(ErrorResponse{
			Error:   http.StatusText(statusCode),
			Message: "The response could not be encoded.",
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Printf("Error writing JSON response: %v", err)
	}
}

// writeErrorResponse helper function to write a standardized error response.
//
// Parameters:
//   - w: The HTTP response writer.
//   - statusCode: The HTTP status code to write.
//   - message: The error message to be included in the response body.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	errResp := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	s.writeJSONResponse(w, statusCode, errResp)
}

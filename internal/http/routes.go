package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/go-chi/chi/v5"
	m "github.com/go-chi/chi/v5/middleware"

	"prompt-evaluator/internal/evaluate"
	"prompt-evaluator/internal/schemas"
)

// DefaultMaxBodyBytes caps request bodies when no limit is configured.
const DefaultMaxBodyBytes = 1 << 20

// Evaluator critiques a prompt. Errors should be *evaluate.Error; anything else is reported
// as a generic failure.
type Evaluator interface {
	Evaluate(ctx context.Context, prompt string) (*schemas.PromptEvaluation, error)
}

type Server struct {
	Evaluator    Evaluator
	MaxBodyBytes int64
}

// NewRouter builds the public API.
func NewRouter(ev Evaluator, maxBodyBytes int64) http.Handler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	s := &Server{Evaluator: ev, MaxBodyBytes: maxBodyBytes}

	r := chi.NewRouter()
	r.Use(EnsureRequestID, m.RequestID, m.RealIP, m.Logger, m.Recoverer, WithRequestLogger)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, schemas.ErrorResponse{Error: "not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, schemas.ErrorResponse{Error: "method not allowed"})
	})

	r.Post("/api/evaluate", s.evaluate)

	return r
}

func NewServer(addr string, ev Evaluator, maxBodyBytes int64) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           NewRouter(ev, maxBodyBytes),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req schemas.EvaluationRequest
	body := http.MaxBytesReader(w, r.Body, s.MaxBodyBytes)
	// An empty body is a request without a prompt, not a malformed one.
	if err := json.NewDecoder(body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		clog.WarnContextf(ctx, "decoding evaluation request: %v", err)
		writeJSON(w, http.StatusBadRequest, schemas.ErrorResponse{Error: evaluate.MsgInvalidBody})
		return
	}

	evaluation, err := s.Evaluator.Evaluate(ctx, req.Prompt)
	if err != nil {
		evalErr := evaluate.AsError(err)
		writeJSON(w, evalErr.Status, schemas.ErrorResponse{Error: evalErr.Message})
		return
	}
	writeJSON(w, http.StatusOK, evaluation)
}

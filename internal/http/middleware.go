package http

import (
	"net/http"

	"github.com/chainguard-dev/clog"
	m "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// EnsureRequestID fills in a UUID request id when the caller sent none and echoes it on the
// response. It must run before chi's RequestID so both agree on the id.
func EnsureRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(m.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(m.RequestIDHeader, id)
		}
		w.Header().Set(m.RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// WithRequestLogger puts a logger tagged with the request id into the request context.
func WithRequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := clog.FromContext(ctx).With("request_id", m.GetReqID(ctx))
		next.ServeHTTP(w, r.WithContext(clog.WithLogger(ctx, log)))
	})
}

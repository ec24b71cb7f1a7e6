package httpd

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/fakeminder/fakeminder/pkg/logger"
)

// Middleware wraps handlers to add cross-cutting functionality.
type Middleware func(http.Handler) http.Handler

// Chain builds a single handler from a middleware stack and endpoint.
// The first middleware runs first.
func Chain(endpoint http.Handler, middlewares ...Middleware) http.Handler {
	handler := endpoint
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}

// RequestIDHeader carries the per-request identifier on responses.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns a UUID to each request, reusing an inbound one when
// present, and echoes it on the response.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.New().String()
			}
			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r)
		})
	}
}

// Logging logs one structured line per request with method, path,
// status, and latency.
func Logging(log *slog.Logger) Middleware {
	if log == nil {
		log = logger.Discard()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := newResponseWriter(w)

			next.ServeHTTP(ww, r)

			log.Info("request",
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Duration("latency", time.Since(start)),
				logger.RequestID(ww.Header().Get(RequestIDHeader)),
			)
		})
	}
}

// responseWriter is a minimal wrapper around http.ResponseWriter that
// tracks the written status code.
type responseWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w}
}

func (w *responseWriter) WriteHeader(status int) {
	if !w.written {
		w.status = status
		w.written = true
		w.ResponseWriter.WriteHeader(status)
	}
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Status returns the HTTP status code, defaulting to 200 when the
// handler never called WriteHeader.
func (w *responseWriter) Status() int {
	if !w.written {
		return http.StatusOK
	}
	return w.status
}

// Flush implements http.Flusher if the underlying writer supports it.
func (w *responseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

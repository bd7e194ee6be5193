// Package middleware holds the HTTP middleware the import API composes
// around its handlers: request logging and trusted-proxy client address
// resolution. Generic concerns (request IDs, panic recovery, compression)
// come from chi's middleware package.
package middleware

import (
	"net/http"
	"time"

	"github.com/harborpoint/creimport/internal/logging"
)

// Logger emits one structured line per request through the request-scoped
// logger, so every entry carries the chi request ID. Uploads are the slow
// path in this service; duration_ms is what makes a stuck import visible in
// the logs.
//
// Logger runs after TrustedRealIP in the chain, so r.RemoteAddr already
// holds the resolved client address.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logging.FromContext(r.Context()).Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)
	})
}

// statusRecorder captures the status code written by the handler chain.
type statusRecorder struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (w *statusRecorder) WriteHeader(status int) {
	if w.wrote {
		return
	}
	w.status = status
	w.wrote = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	if !w.wrote {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Unwrap exposes the underlying writer for http.ResponseController.
func (w *statusRecorder) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// ABOUTME: HTTP request logging middleware with correlation IDs.
// ABOUTME: Logs request start/end and feeds request counters to a recorder.

package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// RequestRecorder receives one observation per completed request
type RequestRecorder interface {
	ObserveRequest(route, method string, status int, duration time.Duration)
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

// LogRequest logs HTTP requests with timing and correlation ID.
func LogRequest(next http.HandlerFunc) http.HandlerFunc {
	return Observe(nil, "")(next)
}

// Observe logs like LogRequest and also reports the request to rec under the
// route template (e.g. /api/v1/audits/{auditID}). rec may be nil.
func Observe(rec RequestRecorder, route string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := generateRequestID()
			path := sanitizePath(r.URL.Path)

			// Add request ID to response header
			w.Header().Set("X-Request-ID", requestID)

			slog.Info("Request started",
				"request_id", requestID,
				"method", r.Method,
				"path", path,
			)

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next(wrapped, r)

			elapsed := time.Since(start)
			slog.Info("Request completed",
				"request_id", requestID,
				"method", r.Method,
				"path", path,
				"status", wrapped.statusCode,
				"latency_ms", elapsed.Milliseconds(),
			)

			if rec != nil {
				label := route
				if label == "" {
					label = "unmatched"
				}
				rec.ObserveRequest(label, r.Method, wrapped.statusCode, elapsed)
			}
		}
	}
}

// sanitizePath strips control characters so request paths cannot forge log lines
func sanitizePath(p string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, p)
}

// generateRequestID creates a short random hex ID.
func generateRequestID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}

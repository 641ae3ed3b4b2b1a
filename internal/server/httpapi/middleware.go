package httpapi

import (
	"bufio"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/shastore/shastore/internal/logging"
)

// requestIDHeader carries the generated per-request id back to the client.
const requestIDHeader = "X-Request-Id"

// statusRecorder captures the status code and byte count written by a
// handler so middleware can log and count them after the fact.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// Unwrap lets http.ResponseController reach the original ResponseWriter.
func (rw *statusRecorder) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// Hijack delegates to the underlying ResponseWriter so the WebSocket
// upgrade on /ws/feed still works behind this wrapper.
func (rw *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hj, ok := rw.ResponseWriter.(http.Hijacker); ok {
		return hj.Hijack()
	}
	return nil, nil, http.ErrNotSupported
}

// RequestLogger assigns each request a uuid, echoes it in X-Request-Id, and
// logs method, path, status, duration and size when the handler returns.
// 4xx logs at warn, 5xx at error.
func RequestLogger(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := uuid.NewString()
			w.Header().Set(requestIDHeader, reqID)

			wrapped := newStatusRecorder(w)
			next.ServeHTTP(wrapped, r)

			log := logger.With(
				"req_id", reqID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapped.statusCode,
				"duration", time.Since(start).String(),
				"bytes", wrapped.written,
				"remote_addr", r.RemoteAddr,
			)

			ctx := r.Context()
			switch {
			case wrapped.statusCode >= 500:
				log.Error(ctx, "http request")
			case wrapped.statusCode >= 400:
				log.Warn(ctx, "http request")
			default:
				log.Info(ctx, "http request")
			}
		})
	}
}

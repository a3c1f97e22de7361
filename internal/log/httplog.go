package log

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the identifier assigned to each request
const RequestIDHeader = "X-Request-Id"

// HTTPLogEntry represents an HTTP request/response log entry
type HTTPLogEntry struct {
	RequestID  string
	Method     string
	Path       string
	Query      string
	Status     int
	Duration   time.Duration
	Size       int
	RemoteAddr string
	UserAgent  string
}

// LogHTTPRequest writes one access-log line. 5xx responses log at error.
func LogHTTPRequest(logger *zap.SugaredLogger, e HTTPLogEntry) {
	kv := []interface{}{
		"request_id", e.RequestID,
		"method", e.Method,
		"path", e.Path,
		"status", e.Status,
		"duration_ms", e.Duration.Milliseconds(),
		"size", e.Size,
		"remote_addr", e.RemoteAddr,
		"user_agent", e.UserAgent,
	}
	if e.Query != "" {
		kv = append(kv, "query", e.Query)
	}

	if e.Status >= http.StatusInternalServerError {
		logger.Errorw("http request", kv...)
		return
	}
	logger.Infow("http request", kv...)
}

// statusRecorder captures the status code and body size of a response.
type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

// HTTPMiddleware logs every request handled by next. A request ID sent by
// the client is kept, otherwise a new one is generated; either way it is
// echoed back in the response.
func HTTPMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()

			requestID := req.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)

			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, req)
			if rec.status == 0 {
				rec.status = http.StatusOK
			}

			LogHTTPRequest(logger, HTTPLogEntry{
				RequestID:  requestID,
				Method:     req.Method,
				Path:       req.URL.Path,
				Query:      req.URL.RawQuery,
				Status:     rec.status,
				Duration:   time.Since(start),
				Size:       rec.size,
				RemoteAddr: req.RemoteAddr,
				UserAgent:  req.UserAgent(),
			})
		})
	}
}

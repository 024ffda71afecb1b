package httpapi

import (
	"bytes"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

const defaultMaxLogBytes = 512

// statusRecorder captures the status code, the number of bytes written and a
// bounded prefix of the body for request logs.
type statusRecorder struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
	maxLogBytes  int
	logBody      bytes.Buffer
	truncated    bool
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if remaining := r.maxLogBytes - r.logBody.Len(); remaining > 0 {
		if len(p) > remaining {
			r.logBody.Write(p[:remaining])
			r.truncated = true
		} else {
			r.logBody.Write(p)
		}
	} else if len(p) > 0 {
		r.truncated = true
	}

	written, err := r.ResponseWriter.Write(p)
	r.bytesWritten += written
	return written, err
}

// requestLogger logs one line per request. Error responses also log a
// truncated copy of the body.
func requestLogger(logger *log.Logger, maxLogBytes int) func(http.Handler) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	if maxLogBytes <= 0 {
		maxLogBytes = defaultMaxLogBytes
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			recorder := &statusRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
				maxLogBytes:    maxLogBytes,
			}

			next.ServeHTTP(recorder, r)

			requestID := middleware.GetReqID(r.Context())
			elapsed := time.Since(started).Round(time.Microsecond)
			if recorder.statusCode < http.StatusBadRequest {
				logger.Printf("[%s] %s %s -> %d (%d bytes, %s)", requestID, r.Method, r.URL.Path, recorder.statusCode, recorder.bytesWritten, elapsed)
				return
			}

			body := recorder.logBody.String()
			if recorder.truncated {
				body += "...(truncated)"
			}
			logger.Printf("[%s] %s %s -> %d (%d bytes, %s) body=%q", requestID, r.Method, r.URL.Path, recorder.statusCode, recorder.bytesWritten, elapsed, body)
		})
	}
}

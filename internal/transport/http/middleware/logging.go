package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"hrledger/internal/platform/metrics"
)

type statusRecorder struct {
	http.ResponseWriter
	status    int
	errorCode string
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) RecordErrorCode(code string) {
	s.errorCode = code
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// Logger emits one structured record per request and feeds the collector
// when one is given.
func Logger(logger *slog.Logger, collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)
			duration := time.Since(start)

			if collector != nil {
				collector.Record(recorder.status, duration)
				if recorder.errorCode != "" {
					collector.RecordError(recorder.errorCode)
				}
			}
			level := slog.LevelInfo
			if recorder.status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", recorder.status),
				slog.Int64("durationMs", duration.Milliseconds()),
				slog.String("requestId", GetRequestID(r.Context())),
			}
			if recorder.errorCode != "" {
				attrs = append(attrs, slog.String("errorCode", recorder.errorCode))
			}
			logger.LogAttrs(r.Context(), level, "http request", attrs...)
		})
	}
}

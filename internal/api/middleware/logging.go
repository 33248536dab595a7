package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RequestLogger пишет строку лога на каждый запрос
func RequestLogger(logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			if rec.status >= http.StatusInternalServerError {
				logger.Error("HTTP %s %s - status=%d duration=%s", r.Method, r.URL.Path, rec.status, time.Since(start))
				return
			}
			logger.Info("HTTP %s %s - status=%d duration=%s", r.Method, r.URL.Path, rec.status, time.Since(start))
		})
	}
}

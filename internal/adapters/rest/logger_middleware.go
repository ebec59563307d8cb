package rest

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/port"

	"github.com/go-chi/chi/v5/middleware"
)

// LoggerMiddleware - middleware для структурированного логирования запросов
func LoggerMiddleware(logger port.LoggerPort) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := contextkeys.NormalizeTraceID(r.Header.Get(contextkeys.TraceIDHeader))
			w.Header().Set(contextkeys.TraceIDHeader, traceID)

			// логгер для use case и адаптеров
			coreLogger := logger.WithFields(port.Fields{
				"trace_id": traceID,
			})

			httpLogger := coreLogger.WithFields(port.Fields{
				"http_method": r.Method,
				"http_path":   r.URL.Path,
				"remote_addr": r.RemoteAddr,
			})

			ctx := r.Context()
			ctx = contextkeys.ContextWithLogger(ctx, coreLogger)
			ctx = contextkeys.ContextWithTraceID(ctx, traceID)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			startTime := time.Now()

			httpLogger.Debug("Request started", nil)

			next.ServeHTTP(ww, r.WithContext(ctx))

			httpLogger.Info("Request finished", port.Fields{
				"status_code":   ww.Status(),
				"bytes_written": ww.BytesWritten(),
				"duration_ms":   time.Since(startTime).Milliseconds(),
			})
		})
	}
}

// RecovererMiddleware перехватывает панику, логирует ее и отвечает 500 в общем JSON-формате.
// Детали паники клиенту не отдаются.
func RecovererMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			contextkeys.LoggerFromContext(r.Context()).Error("Panic recovered", fmt.Errorf("%v", rec), port.Fields{
				"stack": string(debug.Stack()),
			})
			WriteJSONError(w, http.StatusInternalServerError, msgInternalError)
		}()

		next.ServeHTTP(w, r)
	})
}

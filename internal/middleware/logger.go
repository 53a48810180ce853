package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/rahul4469/compiler-craft/context"
)

// RequestLogger logs one line per request and stores a logger tagged with
// the request id in the request context. It must run after chi's RequestID.
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLogger := logger.With(zap.String("request_id", chimw.GetReqID(r.Context())))

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			r = r.WithContext(context.ContextSetLogger(r.Context(), reqLogger))

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				fields := []zap.Field{
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", status),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
				}
				if status >= http.StatusInternalServerError {
					reqLogger.Error("Request failed", fields...)
					return
				}
				reqLogger.Info("Request", fields...)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

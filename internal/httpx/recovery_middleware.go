package httpx

import (
	"net/http"

	"go.uber.org/zap"
)

// RecoveryMiddleware turns a handler panic into a 500 envelope. It must
// sit inside AccessLogMiddleware to know whether headers were sent.
func RecoveryMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered",
						zap.String("request_id", RequestIDFrom(r)),
						zap.Any("panic", rec),
						zap.Stack("stack"),
					)

					var wroteHeader bool
					if rw, ok := w.(*responseWriter); ok {
						wroteHeader = rw.wroteHeader()
					}

					if !wroteHeader {
						JSONError(r, w, http.StatusInternalServerError, CodeInternal, msgInternalFallback, nil)
					}
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

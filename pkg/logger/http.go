package logger

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// HTTPLogger attaches a request-scoped logger to the request context and
// writes one access line per request.
func HTTPLogger(l Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ctx := l.With(r.Context(), "request_id", middleware.GetReqID(r.Context()))
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			l.Infof(ctx, "http %s %s status=%d bytes=%d duration_ms=%d remote_addr=%s",
				r.Method,
				r.URL.Path,
				status,
				ww.BytesWritten(),
				time.Since(start).Milliseconds(),
				r.RemoteAddr,
			)
		})
	}
}

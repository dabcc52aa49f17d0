package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/flowviz/pkg/observability"
)

// requestLogger logs one line per request and reports it to the HTTP
// hooks. Paths are reported by route pattern to keep metric labels bounded.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hooks := observability.HTTP()
			start := time.Now()
			hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			path := r.URL.Path
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				path = rc.RoutePattern()
			}
			d := time.Since(start)
			hooks.OnResponse(r.Context(), r.Method, path, status, ww.BytesWritten(), d)

			logger.Debug("request",
				"method", r.Method,
				"path", path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", d,
				"request_id", middleware.GetReqID(r.Context()))
		})
	}
}

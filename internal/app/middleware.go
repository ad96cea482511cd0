package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sitelog/sitelog/internal/config"
	"github.com/sitelog/sitelog/pkg/session"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Propagate X-Session-Id header into context for downstream services
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := req.Context()
			if sessionId := req.Header.Get("X-Session-Id"); sessionId != "" {
				ctx = session.WithID(ctx, sessionId)
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
}

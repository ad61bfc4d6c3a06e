// ABOUTME: gorilla/mux router assembly for the audit API
// ABOUTME: Wraps each route in logging, session auth, rate limiting and role checks

package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ecg-energy/audit-analyzer/middleware"
)

// RouterOptions carries the rate limiters; a nil limiter disables that class
type RouterOptions struct {
	LoginLimiter *middleware.RateLimiter
	WriteLimiter *middleware.RateLimiter
}

// NewRouter registers every route from Routes plus /metrics
func (h *Handler) NewRouter(opts RouterOptions) *mux.Router {
	r := mux.NewRouter()

	for _, route := range h.Routes() {
		r.HandleFunc(route.Path, h.wrap(route, opts)).Methods(route.Method)
	}
	r.Handle("/metrics", h.metrics.Handler()).Methods(http.MethodGet)

	r.NotFoundHandler = middleware.Observe(h.metrics, "")(func(w http.ResponseWriter, r *http.Request) {
		h.writeError(w, "Not found", http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	return r
}

// wrap applies the middleware chain for one route. The write limiter keys by
// user, so it runs after Auth. Public routes skip Auth so a stale cookie
// cannot block login.
func (h *Handler) wrap(route Route, opts RouterOptions) http.HandlerFunc {
	chain := []func(http.HandlerFunc) http.HandlerFunc{
		middleware.Observe(h.metrics, route.Path),
	}
	if route.Role != "" {
		chain = append(chain, middleware.Auth(h.ValidateSession))
	}

	switch route.Limit {
	case RateLogin:
		chain = append(chain, middleware.RateLimit(opts.LoginLimiter, middleware.ClientIP))
	case RateWrite:
		chain = append(chain, middleware.RateLimit(opts.WriteLimiter, middleware.UserOrIP))
	}

	if route.Role != "" {
		chain = append(chain, middleware.RequireRole(route.Role))
	}

	return middleware.Chain(route.Handler, chain...)
}

// Package kernel assembles the HTTP handler: the global middleware stack,
// the ops endpoints and the API routes.
package kernel

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/campuskart/app/routes"
	"github.com/shashiranjanraj/campuskart/pkg/metrics"
	"github.com/shashiranjanraj/campuskart/pkg/middleware"
	"github.com/shashiranjanraj/campuskart/pkg/reqid"
	"github.com/shashiranjanraj/campuskart/pkg/router"
)

// Handler builds the complete HTTP handler.
func Handler() http.Handler {
	r := NewRouter()
	return r.Handler()
}

// NewRouter builds the router with the global middleware stack applied.
// Exposed separately so the CLI can list routes without binding a port.
//
// Stack (outermost first):
//  1. Prometheus metrics, outermost for accurate total latency
//  2. Recovery, catches panics before they kill the goroutine
//  3. Request ID, injected before anything logs
//  4. Logger, logs method/path/status with request_id correlation
//  5. CORS
//  6. Rate limiter
func NewRouter() *router.Router {
	r := router.New()

	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(200, time.Minute))

	// Ops endpoints, no auth.
	r.HandleFunc("/metrics", metrics.Handler())
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok")) //nolint:errcheck
	})

	routes.RegisterAPI(r)
	return r
}

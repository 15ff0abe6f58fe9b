package app

import (
	"net/http"

	"github.com/2beens/nutriflow/internal/middleware"
	"github.com/2beens/nutriflow/internal/telemetry/metrics"
	"github.com/2beens/nutriflow/pkg"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

type RouterParams struct {
	RateLimiter         middleware.RequestRateLimiter
	Metrics             *metrics.Manager
	AllowedOrigins      []string
	PlanRateLimitPerMin int
}

func NewRouter(a *App, params RouterParams) *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("nutriflow-router"))

	NewHandler(a).SetupRoutes(r, params.RateLimiter, params.Metrics, params.PlanRateLimitPerMin)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteError(w, "not found", http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	r.Use(middleware.PanicRecovery(params.Metrics))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(params.Metrics))
	r.Use(middleware.Cors(params.AllowedOrigins))
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

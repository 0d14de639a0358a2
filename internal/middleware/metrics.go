package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "commune_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// SessionResolutions counts session resolution outcomes by state.
	SessionResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "commune_session_resolutions_total",
		Help: "Session resolution outcomes (authenticated, anonymous, rejected)",
	}, []string{"state"})

	// RelationToggles counts relationship toggles by edge kind and resulting presence.
	RelationToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "commune_relation_toggles_total",
		Help: "Relationship edge toggles by kind and resulting presence",
	}, []string{"kind", "present"})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(service string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(service)
}

// MetricsMiddleware returns the Fiber handler that records request metrics.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}

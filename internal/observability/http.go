package observability

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsHandler serves the Prometheus exposition of the default registry through Fiber.
func MetricsHandler() fiber.Handler {
	RegisterMetrics()
	return adaptor.HTTPHandler(promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{}))
}

// RecordRequest counts one served request and observes its latency.
func RecordRequest(method, route string, status int, duration time.Duration) {
	Requests().WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	RequestLatency().WithLabelValues(method, route).Observe(duration.Seconds())
}

package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	Requests          *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
	OrdersCreated     prometheus.Counter
	OrderLinesWritten prometheus.Counter
	CartLines         prometheus.Gauge

	gatherer prometheus.Gatherer
}

// New registers the shop collectors on a fresh registry. Tests get an
// isolated registry each time; main exposes it on /metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tienda",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tienda",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		OrdersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tienda",
			Name:      "orders_created_total",
			Help:      "Orders committed to the store.",
		}),
		OrderLinesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tienda",
			Name:      "order_lines_written_total",
			Help:      "Order lines committed to the store.",
		}),
		CartLines: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tienda",
			Name:      "cart_lines",
			Help:      "Distinct products currently in the shared cart.",
		}),
		gatherer: reg,
	}
	reg.MustRegister(m.Requests, m.RequestDuration, m.OrdersCreated, m.OrderLinesWritten, m.CartLines)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		status := c.Response().Status
		if err != nil {
			var he *echo.HTTPError
			if errors.As(err, &he) {
				status = he.Code
			} else {
				status = http.StatusInternalServerError
			}
		}

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		m.Requests.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Inc()
		m.RequestDuration.WithLabelValues(c.Request().Method, route).Observe(time.Since(start).Seconds())
		return err
	}
}

package metrics

import (
	"bus-electrification-service/internal/domain"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	DirectionsRequests *prometheus.CounterVec // stage, outcome
	RoutesSkipped      *prometheus.CounterVec // reason
	PlanEntries        *prometheus.CounterVec // tier

	EvaluationDuration prometheus.Histogram
	EvaluationRoutes   prometheus.Histogram

	HTTPRequests *prometheus.CounterVec // method, code

	RegionsLoaded prometheus.Gauge
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		DirectionsRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feasibility_directions_requests_total",
			Help: "Directions requests by leg stage and outcome.",
		}, []string{"stage", "outcome"}),
		RoutesSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feasibility_routes_skipped_total",
			Help: "Routes skipped before evaluation, by reason.",
		}, []string{"reason"}),
		PlanEntries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feasibility_plan_entries_total",
			Help: "Plan entries produced, by eligibility tier.",
		}, []string{"tier"}),
		EvaluationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "feasibility_evaluation_duration_seconds",
			Help:    "Duration of a full evaluation pass.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
		EvaluationRoutes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "feasibility_evaluation_routes",
			Help:    "Number of routes submitted per evaluation pass.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feasibility_http_requests_total",
			Help: "HTTP requests served, by method and status code.",
		}, []string{"method", "code"}),
		RegionsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "feasibility_dac_regions_loaded",
			Help: "Designated-area regions available for overlap.",
		}),
	}

	reg.MustRegister(
		c.DirectionsRequests, c.RoutesSkipped, c.PlanEntries,
		c.EvaluationDuration, c.EvaluationRoutes,
		c.HTTPRequests, c.RegionsLoaded,
	)

	return c
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

func (c *Collector) ObserveLeg(stage domain.Stage, ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	c.DirectionsRequests.WithLabelValues(string(stage), outcome).Inc()
}

func (c *Collector) ObserveSkipped(reason string) {
	c.RoutesSkipped.WithLabelValues(reason).Inc()
}

func (c *Collector) ObservePass(d time.Duration, routes int) {
	c.EvaluationDuration.Observe(d.Seconds())
	c.EvaluationRoutes.Observe(float64(routes))
}

func (c *Collector) ObservePlanEntry(tier domain.Tier) {
	c.PlanEntries.WithLabelValues(string(tier)).Inc()
}

func (c *Collector) ObserveHTTP(method string, code int) {
	c.HTTPRequests.WithLabelValues(method, strconv.Itoa(code)).Inc()
}

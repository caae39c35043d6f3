package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "contentforge", Name: "http_requests_total", Help: "Number of HTTP requests by method, route and status."},
		[]string{"method", "route", "status"},
	)
	GenerationTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "contentforge", Name: "generation_total", Help: "Number of content generation calls by mode and outcome."},
		[]string{"mode", "outcome"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RequestsTotal)
	reg.MustRegister(GenerationTotal)
}

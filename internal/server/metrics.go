package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "toolbox",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route pattern and status code.",
	}, []string{"method", "route", "status"})

	metricRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "toolbox",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	metricToolRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "toolbox",
		Name:      "tool_runs_total",
		Help:      "Widget runs by tool id and outcome (ok, input, parse, network, error).",
	}, []string{"tool", "outcome"})

	metricToolDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "toolbox",
		Name:      "tool_run_duration_seconds",
		Help:      "Widget run latency by tool id.",
		Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 2.5, 5, 10},
	}, []string{"tool"})
)

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests            *prometheus.CounterVec
	CounterHandleRequestPanic  prometheus.Counter
	CounterRateLimitedRequests prometheus.Counter
	CounterWorkoutsLogged      prometheus.Counter
	CounterSignups             prometheus.Counter
	CounterSummaryCacheHits    prometheus.Counter
	CounterSummaryCacheMisses  prometheus.Counter
	CounterSummariesGenerated  prometheus.Counter
	CounterSummaryFailures     prometheus.Counter

	// gauges
	GaugeRequests   prometheus.Gauge
	GaugeLifeSignal prometheus.Gauge

	// histograms
	HistSummaryGenerationDuration prometheus.Histogram
	HistogramRequestDuration      *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("fitlog", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("fitlog", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		})
	}

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of open connections",
	})
	gaugeLifeSignal := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "life_signal",
		Help:      "Shows whether the service is alive",
	})

	histSummaryGenerationDuration := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "summary_generation_duration_seconds",
		Help:      "Duration of a single weekly summary LLM call in seconds",
		Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30, 60},
	})

	histogramRequestDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "Histogram of response time for requests in seconds",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"route", "method", "status_code"})

	return &Manager{
		CounterRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request",
			Help:      "The total number of incoming requests",
		}, []string{"method", "status"}),
		CounterHandleRequestPanic:     counter("handle_request_panic", "The total number of serve request panics"),
		CounterRateLimitedRequests:    counter("rate_limited_requests", "The total number of rate limited requests"),
		CounterWorkoutsLogged:         counter("workouts_logged", "The total number of logged workouts"),
		CounterSignups:                counter("signups", "The total number of new users"),
		CounterSummaryCacheHits:       counter("summary_cache_hits", "Weekly summaries served from cache"),
		CounterSummaryCacheMisses:     counter("summary_cache_misses", "Weekly summaries not found in cache or stale"),
		CounterSummariesGenerated:     counter("summaries_generated", "Weekly summaries generated by the LLM"),
		CounterSummaryFailures:        counter("summary_failures", "Failed weekly summary LLM calls"),
		GaugeRequests:                 gaugeRequests,
		GaugeLifeSignal:               gaugeLifeSignal,
		HistSummaryGenerationDuration: histSummaryGenerationDuration,
		HistogramRequestDuration:      histogramRequestDuration,
	}
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests              *prometheus.CounterVec
	CounterHandleRequestPanic    prometheus.Counter
	CounterRateLimitedRequests   prometheus.Counter
	CounterPlanGenerations       *prometheus.CounterVec
	CounterOnboardingCompletions prometheus.Counter
	CounterResets                prometheus.Counter
	CounterStaleResults          prometheus.Counter

	// gauges
	GaugeRequests   prometheus.Gauge
	GaugeLifeSignal prometheus.Gauge

	// histograms
	HistogramRequestDuration   *prometheus.HistogramVec
	HistPlanGenerationDuration *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("nutriflow", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("nutriflow", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterHandleRequestPanic := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics",
	})
	counterRateLimitedRequests := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "rate_limited_requests",
		Help:      "The total number of rate limited requests",
	})
	counterPlanGenerations := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "plan_generations",
		Help:      "The total number of plan generation calls, by plan kind and outcome",
	}, []string{"kind", "outcome"})
	counterOnboardingCompletions := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "onboarding_completions",
		Help:      "The total number of completed onboardings",
	})
	counterResets := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "profile_resets",
		Help:      "The total number of profile resets",
	})
	counterStaleResults := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "stale_plan_results",
		Help:      "Plan results discarded because their session was reset",
	})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of requests served",
	})
	gaugeLifeSignal := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "life_signal",
		Help:      "Shows whether the service is alive",
	})

	histogramRequestDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "Histogram of response time for requests in seconds",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"route", "method", "status_code"})

	// generation calls are slow, seconds to tens of seconds
	histPlanGenerationDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "plan_generation_duration_seconds",
		Help:      "Duration of a single plan generation call in seconds",
		Buckets:   []float64{.5, 1, 2, 4, 8, 15, 30, 60, 120},
	}, []string{"kind"})

	return &Manager{
		CounterRequests:              counterRequests,
		CounterHandleRequestPanic:    counterHandleRequestPanic,
		CounterRateLimitedRequests:   counterRateLimitedRequests,
		CounterPlanGenerations:       counterPlanGenerations,
		CounterOnboardingCompletions: counterOnboardingCompletions,
		CounterResets:                counterResets,
		CounterStaleResults:          counterStaleResults,
		GaugeRequests:                gaugeRequests,
		GaugeLifeSignal:              gaugeLifeSignal,
		HistogramRequestDuration:     histogramRequestDuration,
		HistPlanGenerationDuration:   histPlanGenerationDuration,
	}
}

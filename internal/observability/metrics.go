package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerMetricsOnce sync.Once

	AICalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prsentinel_ai_calls_total",
			Help: "Total AI calls",
		},
		[]string{"provider"},
	)

	AIErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prsentinel_ai_errors_total",
			Help: "Total AI errors",
		},
		[]string{"provider"},
	)

	AILatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "prsentinel_ai_latency_seconds",
			Help:    "AI call latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	AITokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prsentinel_ai_tokens_total",
			Help: "Total AI tokens",
		},
		[]string{"provider", "model", "type"},
	)

	AICostUSD = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prsentinel_ai_cost_usd_total",
			Help: "Total estimated AI cost in USD",
		},
		[]string{"provider", "model"},
	)

	BudgetBlocks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prsentinel_budget_block_total",
			Help: "Total budget block events",
		},
		[]string{"scope"},
	)

	FilesSegmented = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "prsentinel_diff_files_segmented_total",
			Help: "Total file change records produced by the diff segmenter",
		},
	)

	FilesExcluded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "prsentinel_diff_files_excluded_total",
			Help: "Total file change records dropped by the exclusion filter",
		},
	)
)

func InitMetrics() {
	registerMetricsOnce.Do(func() {
		prometheus.MustRegister(
			AICalls,
			AIErrors,
			AILatency,
			AITokens,
			AICostUSD,
			BudgetBlocks,
			FilesSegmented,
			FilesExcluded,
		)
	})
}

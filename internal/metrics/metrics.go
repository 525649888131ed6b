package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts answered queries by inbound channel (web, whatsapp).
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "krishigpt_requests_total",
		Help: "Farmer queries processed, by channel.",
	}, []string{"channel"})

	// LLMRetriesTotal counts completion attempts that failed and were retried.
	LLMRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "krishigpt_llm_retries_total",
		Help: "Completion attempts that failed and triggered a retry.",
	})

	// LLMExhaustedTotal counts queries that fell back to the apology message.
	LLMExhaustedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "krishigpt_llm_exhausted_total",
		Help: "Queries answered with the fixed fallback after all retries failed.",
	})

	// HistoryDegraded flips to 1 when the durable history backend is abandoned.
	HistoryDegraded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "krishigpt_history_degraded",
		Help: "1 when conversation history runs on in-process memory only.",
	})
)

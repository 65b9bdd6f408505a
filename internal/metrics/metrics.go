// Package metrics — метрики Prometheus для модерации: сколько апдейтов пришло,
// сколько действий выполнено и с каким результатом, сколько они длились.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// UpdatesTotal — апдейты по виду события: "new_members", "member_left", "other", "filtered".
	UpdatesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "joinguard_updates_total",
		Help: "Total number of updates received, by classified event kind",
	}, []string{"event"})

	// ActionsTotal — вызовы Bot API по действию и результату ("ok" / "failed").
	ActionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "joinguard_actions_total",
		Help: "Total number of moderation actions issued",
	}, []string{"action", "result"})

	// ActionLatency — длительность одного вызова Bot API в секундах.
	ActionLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "joinguard_action_latency_seconds",
		Help:    "Bot API call latency in seconds",
		Buckets: []float64{.025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"action"})

	// APIErrorsTotal — провалы с кодом ошибки Telegram ("0" — не ошибка API).
	APIErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "joinguard_api_errors_total",
		Help: "Failed moderation actions by Telegram error code",
	}, []string{"action", "code"})

	// SequencesAborted — последовательности, прерванные политикой abort.
	SequencesAborted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "joinguard_sequences_aborted_total",
		Help: "Moderation sequences aborted on first failure",
	})

	// InflightUpdates — апдейты в обработке прямо сейчас.
	InflightUpdates = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "joinguard_inflight_updates",
		Help: "Current number of updates being handled",
	})
)

func init() {
	prometheus.MustRegister(
		UpdatesTotal,
		ActionsTotal,
		ActionLatency,
		APIErrorsTotal,
		SequencesAborted,
		InflightUpdates,
	)
}

// Handler возвращает HTTP-обработчик /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

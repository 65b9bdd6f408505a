// Package moderation — observer.go переводит итоги действий в метрики.
package moderation

import (
	"context"
	"strconv"

	"serotonyl.ru/joinguard/internal/metrics"
)

// MetricsObserver считает действия в Prometheus.
type MetricsObserver struct{}

func (MetricsObserver) Observe(_ context.Context, o Outcome) {
	action := string(o.Action)
	metrics.ActionLatency.WithLabelValues(action).Observe(o.Duration.Seconds())
	if o.OK() {
		metrics.ActionsTotal.WithLabelValues(action, "ok").Inc()
		return
	}
	metrics.ActionsTotal.WithLabelValues(action, "failed").Inc()
	metrics.APIErrorsTotal.WithLabelValues(action, strconv.Itoa(APIErrorCode(o.Err))).Inc()
}

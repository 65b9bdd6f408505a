// Package jobs управляет фоновыми задачами (cron).
// scheduler.go по расписанию чистит журнал модерации от старых записей.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Pruner удаляет записи журнала старше cutoff.
type Pruner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron      *cron.Cron
	pruner    Pruner
	retention time.Duration
	schedule  string
	now       func() time.Time
}

// NewScheduler создаёт планировщик в часовом поясе loc.
func NewScheduler(pruner Pruner, retention time.Duration, schedule string, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		pruner:    pruner,
		retention: retention,
		schedule:  schedule,
		now:       time.Now,
	}
}

// Start регистрирует задачи и запускает cron.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.schedule, func() {
		log.Debug("[CRON] Очистка журнала модерации")
		s.prune(ctx)
	}); err != nil {
		return fmt.Errorf("некорректное расписание %q: %w", s.schedule, err)
	}

	s.cron.Start()
	log.WithField("schedule", s.schedule).Info("Планировщик задач запущен")
	return nil
}

// Stop останавливает планировщик и ждёт завершения запущенных задач.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}

func (s *Scheduler) prune(ctx context.Context) {
	cutoff := s.now().Add(-s.retention)
	n, err := s.pruner.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		log.WithError(err).Error("[CRON] Ошибка очистки журнала")
		return
	}
	log.WithFields(log.Fields{
		"deleted": n,
		"cutoff":  cutoff.Format(time.RFC3339),
	}).Info("[CRON] Журнал модерации очищен")
}

// Package moderation — service.go выполняет модерационные действия по событию.
// Порядок для каждого вступившего: удалить → снять ограничение,
// затем одно удаление системного сообщения.
package moderation

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// API — то, что сервису нужно от Bot API. Реализация — TelegramAPI.
type API interface {
	RemoveMember(ctx context.Context, chatID, userID int64) error
	RestoreMember(ctx context.Context, chatID, userID int64) error
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
}

// Observer получает итог каждого вызова (метрики, журнал).
// Ошибки наблюдателя не влияют на последовательность действий.
type Observer interface {
	Observe(ctx context.Context, o Outcome)
}

// Policy — что делать при провале одного действия.
type Policy string

const (
	// PolicyContinue — пробуем все действия, провалы только логируем.
	PolicyContinue Policy = "continue"
	// PolicyAbort — первый провал прерывает последовательность и возвращается.
	PolicyAbort Policy = "abort"
)

// ParsePolicy разбирает значение из конфига.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyContinue, PolicyAbort:
		return Policy(s), nil
	}
	return "", fmt.Errorf("unknown action failure policy %q (want continue|abort)", s)
}

// Service — последовательность модерационных действий.
// Состояния между событиями нет: один экземпляр безопасно вызывать
// из нескольких горутин, если это позволяет API.
type Service struct {
	api       API
	policy    Policy
	observers []Observer
	now       func() time.Time
}

// NewService создаёт сервис. Пустая политика означает PolicyContinue.
func NewService(api API, policy Policy, observers ...Observer) *Service {
	if policy == "" {
		policy = PolicyContinue
	}
	return &Service{
		api:       api,
		policy:    policy,
		observers: observers,
		now:       time.Now,
	}
}

// Policy возвращает выбранную политику.
func (s *Service) Policy() Policy {
	return s.policy
}

// Handle выполняет действия для события.
// PolicyContinue: всегда nil, сводка провалов уходит в лог.
// PolicyAbort: первый *ActionError.
func (s *Service) Handle(ctx context.Context, ev Event) error {
	logger := log.WithFields(log.Fields{
		"component": "moderation",
		"event":     ev.Kind.String(),
		"chat_id":   ev.ChatID,
	})

	var failures error

	// run выполняет одно действие. Ненулевая ошибка — только при PolicyAbort,
	// её логирует вызывающий.
	run := func(action Action, targetID int64, call func() error) error {
		err := s.exec(ctx, action, ev.ChatID, targetID, call)
		if err == nil {
			return nil
		}
		if s.policy == PolicyAbort {
			return err
		}
		logger.WithError(err).WithField("action", string(action)).Error("moderation action failed")
		failures = multierr.Append(failures, err)
		return nil
	}

	switch ev.Kind {
	case EventNewMembers:
		for _, m := range ev.Members {
			userID := m.ID
			if err := run(ActionRemove, userID, func() error {
				return s.api.RemoveMember(ctx, ev.ChatID, userID)
			}); err != nil {
				return err
			}
			if err := run(ActionRestore, userID, func() error {
				return s.api.RestoreMember(ctx, ev.ChatID, userID)
			}); err != nil {
				return err
			}
		}
		if err := run(ActionDeleteMessage, int64(ev.MessageID), func() error {
			return s.api.DeleteMessage(ctx, ev.ChatID, ev.MessageID)
		}); err != nil {
			return err
		}
		if failures == nil {
			logger.WithField("members", ev.MemberIDs()).Info("new members processed")
		}

	case EventMemberLeft:
		if err := run(ActionDeleteMessage, int64(ev.MessageID), func() error {
			return s.api.DeleteMessage(ctx, ev.ChatID, ev.MessageID)
		}); err != nil {
			return err
		}
		if failures == nil {
			logger.Debug("left member message deleted")
		}

	case EventOther:
		return nil
	}

	if failures != nil {
		errs := multierr.Errors(failures)
		logger.WithError(failures).WithField("failed_actions", len(errs)).Warn("moderation sequence finished with failures")
	}
	return nil
}

// exec вызывает API, замеряет время и раздаёт итог наблюдателям.
func (s *Service) exec(ctx context.Context, action Action, chatID, targetID int64, call func() error) error {
	started := s.now()
	err := call()
	if err != nil {
		err = newActionError(action, chatID, targetID, err)
	}

	o := Outcome{
		Action:   action,
		ChatID:   chatID,
		TargetID: targetID,
		Err:      err,
		Duration: s.now().Sub(started),
		At:       started,
	}
	for _, obs := range s.observers {
		obs.Observe(ctx, o)
	}
	return err
}

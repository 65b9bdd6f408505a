// Package moderation — handlers.go связывает апдейты Telegram с сервисом.
package moderation

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/joinguard/internal/metrics"
)

// Handler — единственная реакция бота на входящие апдейты.
type Handler struct {
	service *Service
	selfID  int64 // ID самого бота: его вступление не модерируем
}

// NewHandler создаёт обработчик. selfID — botAPI.Self.ID.
func NewHandler(service *Service, selfID int64) *Handler {
	return &Handler{service: service, selfID: selfID}
}

// HandleUpdate классифицирует апдейт и, если есть что делать, запускает
// последовательность действий. Ошибка возвращается только при PolicyAbort;
// повторно апдейт никто не обрабатывает.
func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) error {
	ev := Classify(update)
	metrics.UpdatesTotal.WithLabelValues(ev.Kind.String()).Inc()

	if ev.Kind == EventOther {
		return nil
	}
	ev.Members = withoutUser(ev.Members, h.selfID)

	log.WithFields(log.Fields{
		"component":  "moderation",
		"update_id":  update.UpdateID,
		"event":      ev.Kind.String(),
		"chat_id":    ev.ChatID,
		"message_id": ev.MessageID,
		"members":    ev.MemberIDs(),
	}).Debug("membership event")

	err := h.service.Handle(ctx, ev)
	var actionErr *ActionError
	if errors.As(err, &actionErr) {
		metrics.SequencesAborted.Inc()
	}
	return err
}

// withoutUser убирает из списка пользователя id, порядок остальных сохраняется.
// Сообщение о вступлении всё равно удаляется, даже если список опустел.
func withoutUser(members []Member, id int64) []Member {
	if id == 0 {
		return members
	}
	out := make([]Member, 0, len(members))
	for _, m := range members {
		if m.ID != id {
			out = append(out, m)
		}
	}
	return out
}

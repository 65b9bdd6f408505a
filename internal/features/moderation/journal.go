// Package moderation — journal.go сохраняет итоги действий для разбора инцидентов.
package moderation

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// JournalStore — куда пишется журнал. Реализация — Repository.
type JournalStore interface {
	InsertAction(ctx context.Context, e *JournalEntry) error
}

// Journal — Observer, который пишет каждый Outcome в хранилище.
// Сбой записи только логируется.
type Journal struct {
	store JournalStore
}

func NewJournal(store JournalStore) *Journal {
	return &Journal{store: store}
}

func (j *Journal) Observe(ctx context.Context, o Outcome) {
	if err := j.store.InsertAction(ctx, NewJournalEntry(o)); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"component": "journal",
			"action":    string(o.Action),
			"chat_id":   o.ChatID,
			"target_id": o.TargetID,
		}).Warn("journal write failed")
	}
}

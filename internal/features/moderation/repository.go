// Package moderation — repository.go пишет журнал действий в таблицу moderation_actions.
package moderation

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// InsertAction добавляет запись о действии и заполняет e.ID.
func (r *Repository) InsertAction(ctx context.Context, e *JournalEntry) error {
	query := `
		INSERT INTO moderation_actions
			(action, chat_id, target_id, success, error_text, api_error_code, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		e.Action, e.ChatID, e.TargetID, e.Success,
		e.ErrorText, e.APIErrorCode, e.DurationMs, e.CreatedAt,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("ошибка записи в журнал модерации: %w", err)
	}
	return nil
}

// DeleteOlderThan удаляет записи старше cutoff, возвращает число удалённых.
func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM moderation_actions WHERE created_at < $1`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("ошибка очистки журнала модерации: %w", err)
	}
	return tag.RowsAffected(), nil
}

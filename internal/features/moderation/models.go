// Package moderation чистит чат от вступлений и выходов.
// models.go описывает событие чата и результат одного модерационного действия.
package moderation

import (
	"fmt"
	"time"
)

// EventKind — вид события, извлечённого из апдейта.
type EventKind int

const (
	// EventOther — всё, на что бот не реагирует (текст, правки, посты каналов).
	EventOther EventKind = iota
	// EventNewMembers — в чат вступили новые участники.
	EventNewMembers
	// EventMemberLeft — участник вышел или был удалён.
	EventMemberLeft
)

func (k EventKind) String() string {
	switch k {
	case EventNewMembers:
		return "new_members"
	case EventMemberLeft:
		return "member_left"
	default:
		return "other"
	}
}

// Member — вступивший пользователь. Для решений важен только ID,
// остальное нужно для логов.
type Member struct {
	ID       int64
	UserName string
	IsBot    bool
}

// Event — результат классификации одного апдейта.
// Members заполнен только для EventNewMembers (в порядке доставки Telegram),
// MessageID — системное сообщение о вступлении/выходе.
type Event struct {
	Kind      EventKind
	ChatID    int64
	MessageID int
	Members   []Member
}

// MemberIDs возвращает ID участников в исходном порядке.
func (e Event) MemberIDs() []int64 {
	ids := make([]int64, 0, len(e.Members))
	for _, m := range e.Members {
		ids = append(ids, m.ID)
	}
	return ids
}

// Action — одно исходящее действие против Bot API.
type Action string

const (
	ActionRemove        Action = "remove"
	ActionRestore       Action = "restore"
	ActionDeleteMessage Action = "delete_message"
)

// Outcome — итог одного вызова Bot API. Создаётся в момент вызова
// и сразу отдаётся наблюдателям, нигде не хранится для решений.
type Outcome struct {
	Action   Action
	ChatID   int64
	TargetID int64 // user_id для remove/restore, message_id для delete_message
	Err      error
	Duration time.Duration
	At       time.Time
}

// OK — вызов прошёл успешно.
func (o Outcome) OK() bool {
	return o.Err == nil
}

func (o Outcome) String() string {
	status := "ok"
	if o.Err != nil {
		status = "failed"
	}
	return fmt.Sprintf("%s chat_id=%d target_id=%d %s", o.Action, o.ChatID, o.TargetID, status)
}

// JournalEntry — строка таблицы moderation_actions.
// Журнал только пишется: бот никогда не читает его для решений.
type JournalEntry struct {
	ID           int64     `db:"id"`
	Action       string    `db:"action"`
	ChatID       int64     `db:"chat_id"`
	TargetID     int64     `db:"target_id"`
	Success      bool      `db:"success"`
	ErrorText    *string   `db:"error_text"`     // nil при успехе
	APIErrorCode *int      `db:"api_error_code"` // код Telegram, если есть
	DurationMs   int64     `db:"duration_ms"`
	CreatedAt    time.Time `db:"created_at"`
}

// NewJournalEntry переводит Outcome в строку журнала.
func NewJournalEntry(o Outcome) *JournalEntry {
	e := &JournalEntry{
		Action:     string(o.Action),
		ChatID:     o.ChatID,
		TargetID:   o.TargetID,
		Success:    o.OK(),
		DurationMs: o.Duration.Milliseconds(),
		CreatedAt:  o.At.UTC(),
	}
	if o.Err != nil {
		text := o.Err.Error()
		e.ErrorText = &text
		if code := APIErrorCode(o.Err); code != 0 {
			e.APIErrorCode = &code
		}
	}
	return e
}

// Package moderation — errors.go описывает ошибки модерационных действий.
// Каждая ошибка несёт причину от Bot API и идентификаторы для логов.
package moderation

import (
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Виды ошибок. Сравниваются через errors.Is с *ActionError.
var (
	// ErrRemoveFailed — не удалось удалить участника из чата
	ErrRemoveFailed = errors.New("remove member failed")
	// ErrRestoreFailed — не удалось снять ограничение после удаления
	ErrRestoreFailed = errors.New("restore member failed")
	// ErrDeleteMessageFailed — не удалось удалить системное сообщение
	ErrDeleteMessageFailed = errors.New("delete message failed")
)

// ActionError — провал одного вызова Bot API.
type ActionError struct {
	Kind     error // один из ErrRemoveFailed, ErrRestoreFailed, ErrDeleteMessageFailed
	ChatID   int64
	TargetID int64 // user_id или message_id, в зависимости от Kind
	Err      error
}

func newActionError(action Action, chatID, targetID int64, cause error) *ActionError {
	var kind error
	switch action {
	case ActionRemove:
		kind = ErrRemoveFailed
	case ActionRestore:
		kind = ErrRestoreFailed
	default:
		kind = ErrDeleteMessageFailed
	}
	return &ActionError{Kind: kind, ChatID: chatID, TargetID: targetID, Err: cause}
}

func (e *ActionError) Error() string {
	switch e.Kind {
	case ErrRemoveFailed:
		return fmt.Sprintf("failed to remove chat member: %v (chat_id=%d user_id=%d)", e.Err, e.ChatID, e.TargetID)
	case ErrRestoreFailed:
		return fmt.Sprintf("failed to restore chat member: %v (chat_id=%d user_id=%d)", e.Err, e.ChatID, e.TargetID)
	default:
		return fmt.Sprintf("failed to delete message: %v (chat_id=%d message_id=%d)", e.Err, e.ChatID, e.TargetID)
	}
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// Is позволяет писать errors.Is(err, ErrRestoreFailed).
func (e *ActionError) Is(target error) bool {
	return e.Kind == target
}

// APIErrorCode достаёт код ошибки Telegram (400, 403, 429 ...) из цепочки.
// Возвращает 0, если ошибка не от Bot API (сеть, отменённый контекст).
func APIErrorCode(err error) int {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) && apiErr != nil {
		return apiErr.Code
	}
	return 0
}

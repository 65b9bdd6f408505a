// Package moderation — telegram.go реализует API поверх go-telegram-bot-api.
package moderation

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Requester — часть *tgbotapi.BotAPI, через которую идут вызовы.
type Requester interface {
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// TelegramAPI выполняет модерационные действия через Bot API.
// Один экземпляр создаётся при старте и передаётся в Service.
type TelegramAPI struct {
	bot Requester
}

// NewTelegramAPI оборачивает клиент Bot API.
func NewTelegramAPI(bot Requester) *TelegramAPI {
	return &TelegramAPI{bot: bot}
}

// RemoveMember удаляет участника (banChatMember).
func (t *TelegramAPI) RemoveMember(ctx context.Context, chatID, userID int64) error {
	return t.request(ctx, tgbotapi.BanChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{ChatID: chatID, UserID: userID},
	})
}

// RestoreMember снимает бан, чтобы удаление не стало вечным.
// Без only_if_banned Telegram выкидывает участника, который всё ещё в чате,
// так что при сорвавшемся бане этот вызов тоже удаляет вступившего.
func (t *TelegramAPI) RestoreMember(ctx context.Context, chatID, userID int64) error {
	return t.request(ctx, tgbotapi.UnbanChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{ChatID: chatID, UserID: userID},
	})
}

// DeleteMessage удаляет системное сообщение.
func (t *TelegramAPI) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	return t.request(ctx, tgbotapi.NewDeleteMessage(chatID, messageID))
}

func (t *TelegramAPI) request(ctx context.Context, c tgbotapi.Chattable) error {
	// Клиент не принимает контекст; на shutdown хотя бы не начинаем новый вызов.
	if err := ctx.Err(); err != nil {
		return err
	}
	// при !ok клиент сам возвращает *tgbotapi.Error с кодом Telegram
	_, err := t.bot.Request(c)
	return err
}

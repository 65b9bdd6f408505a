// Package middleware содержит промежуточные обработчики для логирования
// и восстановления после паники.
package middleware

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// LogUpdate логирует входящий апдейт с сообщением.
// Записывает: update_id, chat_id, message_id, отправителя и тип служебного события.
func LogUpdate(update tgbotapi.Update) {
	message := update.Message
	if message == nil || message.Chat == nil {
		return
	}

	fields := log.Fields{
		"update_id":  update.UpdateID,
		"chat_id":    message.Chat.ID,
		"chat_type":  message.Chat.Type,
		"message_id": message.MessageID,
	}
	if message.From != nil {
		fields["user_id"] = message.From.ID
		fields["username"] = message.From.UserName
	}
	switch {
	case len(message.NewChatMembers) > 0:
		fields["service"] = "new_chat_members"
	case message.LeftChatMember != nil:
		fields["service"] = "left_chat_member"
	}

	log.WithFields(fields).Debug("Входящее сообщение")
}

// Package moderation — classifier.go превращает апдейт Telegram в Event.
package moderation

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Classify определяет, что за событие пришло. Чистая функция:
// ничего не вызывает, никогда не падает. Всё непонятное — EventOther.
func Classify(update tgbotapi.Update) Event {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return Event{Kind: EventOther}
	}

	switch {
	case len(msg.NewChatMembers) > 0:
		members := make([]Member, 0, len(msg.NewChatMembers))
		for _, u := range msg.NewChatMembers {
			members = append(members, Member{ID: u.ID, UserName: u.UserName, IsBot: u.IsBot})
		}
		return Event{
			Kind:      EventNewMembers,
			ChatID:    msg.Chat.ID,
			MessageID: msg.MessageID,
			Members:   members,
		}

	case msg.LeftChatMember != nil:
		return Event{
			Kind:      EventMemberLeft,
			ChatID:    msg.Chat.ID,
			MessageID: msg.MessageID,
		}
	}

	return Event{Kind: EventOther, ChatID: msg.Chat.ID}
}

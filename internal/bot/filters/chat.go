// Package filters решает, в каких чатах бот вообще что-то делает.
package filters

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// ChatFilter пропускает только группы и супергруппы, а если задан
// список MODERATED_CHAT_IDS — только чаты из него.
type ChatFilter struct {
	allowed map[int64]struct{}
}

func NewChatFilter(chatIDs []int64) *ChatFilter {
	f := &ChatFilter{}
	if len(chatIDs) > 0 {
		f.allowed = make(map[int64]struct{}, len(chatIDs))
		for _, id := range chatIDs {
			f.allowed[id] = struct{}{}
		}
	}
	return f
}

// CheckAccess возвращает true, если сообщение пришло из модерируемого чата.
func (f *ChatFilter) CheckAccess(message *tgbotapi.Message) bool {
	if message == nil || message.Chat == nil {
		return false
	}

	chat := message.Chat
	logger := log.WithFields(log.Fields{
		"component": "ChatFilter",
		"chat_id":   chat.ID,
		"chat_type": chat.Type,
	})

	if !chat.IsGroup() && !chat.IsSuperGroup() {
		logger.Debug("deny: not a group")
		return false
	}

	if f.allowed == nil {
		return true
	}
	if _, ok := f.allowed[chat.ID]; ok {
		return true
	}

	logger.Debug("deny: chat is not in MODERATED_CHAT_IDS")
	return false
}

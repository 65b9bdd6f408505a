package filters

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
)

func msgIn(chatID int64, chatType string) *tgbotapi.Message {
	return &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID, Type: chatType}}
}

func TestChatFilterWithoutAllowList(t *testing.T) {
	f := NewChatFilter(nil)

	assert.True(t, f.CheckAccess(msgIn(-100500, "supergroup")))
	assert.True(t, f.CheckAccess(msgIn(-42, "group")))
	assert.False(t, f.CheckAccess(msgIn(42, "private")))
	assert.False(t, f.CheckAccess(msgIn(-100600, "channel")))
	assert.False(t, f.CheckAccess(nil))
	assert.False(t, f.CheckAccess(&tgbotapi.Message{}))
}

func TestChatFilterAllowList(t *testing.T) {
	f := NewChatFilter([]int64{-100500})

	assert.True(t, f.CheckAccess(msgIn(-100500, "supergroup")))
	assert.False(t, f.CheckAccess(msgIn(-100501, "supergroup")))
	assert.False(t, f.CheckAccess(msgIn(-100500, "private")))
}

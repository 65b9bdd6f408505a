package moderation

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRequester struct {
	requests []tgbotapi.Chattable
	resp     *tgbotapi.APIResponse
	err      error
}

func (f *fakeRequester) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests = append(f.requests, c)
	if f.err != nil {
		return f.resp, f.err
	}
	if f.resp != nil {
		return f.resp, nil
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func TestTelegramAPIRemoveMember(t *testing.T) {
	req := &fakeRequester{}
	require.NoError(t, NewTelegramAPI(req).RemoveMember(context.Background(), chatC, userU1))

	require.Len(t, req.requests, 1)
	ban, ok := req.requests[0].(tgbotapi.BanChatMemberConfig)
	require.True(t, ok, "got %T", req.requests[0])
	assert.Equal(t, chatC, ban.ChatID)
	assert.Equal(t, userU1, ban.UserID)
	assert.Zero(t, ban.UntilDate)
}

func TestTelegramAPIRestoreMember(t *testing.T) {
	req := &fakeRequester{}
	require.NoError(t, NewTelegramAPI(req).RestoreMember(context.Background(), chatC, userU1))

	require.Len(t, req.requests, 1)
	unban, ok := req.requests[0].(tgbotapi.UnbanChatMemberConfig)
	require.True(t, ok, "got %T", req.requests[0])
	assert.Equal(t, chatC, unban.ChatID)
	assert.Equal(t, userU1, unban.UserID)
	assert.False(t, unban.OnlyIfBanned)
}

func TestTelegramAPIDeleteMessage(t *testing.T) {
	req := &fakeRequester{}
	require.NoError(t, NewTelegramAPI(req).DeleteMessage(context.Background(), chatC, triggerM))

	require.Len(t, req.requests, 1)
	del, ok := req.requests[0].(tgbotapi.DeleteMessageConfig)
	require.True(t, ok, "got %T", req.requests[0])
	assert.Equal(t, chatC, del.ChatID)
	assert.Equal(t, triggerM, del.MessageID)
}

func TestTelegramAPIPropagatesErrors(t *testing.T) {
	apiErr := &tgbotapi.Error{Code: 400, Message: "Bad Request: message can't be deleted"}
	req := &fakeRequester{err: apiErr}

	err := NewTelegramAPI(req).DeleteMessage(context.Background(), chatC, triggerM)
	assert.ErrorIs(t, err, apiErr)
	assert.Equal(t, 400, APIErrorCode(err))
}

func TestTelegramAPIKeepsErrorCode(t *testing.T) {
	req := &fakeRequester{
		resp: &tgbotapi.APIResponse{Ok: false, ErrorCode: 403, Description: "Forbidden: bot is not a member"},
		err:  &tgbotapi.Error{Code: 403, Message: "Forbidden: bot is not a member"},
	}

	err := NewTelegramAPI(req).RemoveMember(context.Background(), chatC, userU1)
	require.Error(t, err)
	assert.Equal(t, 403, APIErrorCode(err))
}

// Бан сорвался — unban всё равно уходит, и без only_if_banned он удаляет участника.
func TestRestoreAfterFailedBanStillRemoves(t *testing.T) {
	req := &banFailingRequester{}

	err := NewService(NewTelegramAPI(req), PolicyContinue).Handle(context.Background(), newMembersEvent(userU1))
	require.NoError(t, err)

	require.Len(t, req.unbans, 1)
	assert.Equal(t, userU1, req.unbans[0].UserID)
	assert.False(t, req.unbans[0].OnlyIfBanned)
}

type banFailingRequester struct {
	unbans []tgbotapi.UnbanChatMemberConfig
}

func (r *banFailingRequester) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	switch cfg := c.(type) {
	case tgbotapi.BanChatMemberConfig:
		return nil, errors.New("Post \"https://api.telegram.org/bot/banChatMember\": i/o timeout")
	case tgbotapi.UnbanChatMemberConfig:
		r.unbans = append(r.unbans, cfg)
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func TestTelegramAPICancelledContext(t *testing.T) {
	req := &fakeRequester{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewTelegramAPI(req).RemoveMember(ctx, chatC, userU1)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, req.requests)
}

package service

import (
	"context"
	"dating_app_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatService_RequiresMatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "alice")
	b := env.register(t, "bobby")

	for _, text := range []string{"hi", "", "   "} {
		_, err := env.chat.SendMessage(ctx, a.ID, b.ID, text)
		assert.ErrorIs(t, err, util.ErrNotMatched, "text %q", text)
	}
	_, err := env.chat.ListMessages(ctx, b.ID, a.ID)
	assert.ErrorIs(t, err, util.ErrNotMatched)

	// pending 请求不算匹配
	_, err = env.match.CreateRequest(ctx, a.ID, b.ID)
	require.NoError(t, err)
	_, err = env.chat.SendMessage(ctx, a.ID, b.ID, "hi")
	assert.ErrorIs(t, err, util.ErrNotMatched)
}

func TestChatService_SendAndList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "carol")
	b := env.register(t, "danny")
	env.matchUsers(t, a.ID, b.ID)

	_, err := env.chat.SendMessage(ctx, a.ID, b.ID, "   ")
	assert.ErrorIs(t, err, util.ErrEmptyText)

	msg, err := env.chat.SendMessage(ctx, a.ID, b.ID, "  hi  ")
	require.NoError(t, err)
	assert.Equal(t, "hi", msg.Text)
	assert.False(t, msg.IsRead)

	_, err = env.chat.SendMessage(ctx, b.ID, a.ID, "hello back")
	require.NoError(t, err)

	msgs, err := env.chat.ListMessages(ctx, b.ID, a.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "hi", msgs[0].Text)
	assert.Equal(t, "hello back", msgs[1].Text)
}

func TestChatService_MarkRead(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "erica")
	b := env.register(t, "felix")
	env.matchUsers(t, a.ID, b.ID)

	msg, err := env.chat.SendMessage(ctx, a.ID, b.ID, "hi")
	require.NoError(t, err)

	_, err = env.chat.MarkRead(ctx, a.ID, msg.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = env.chat.MarkRead(ctx, b.ID, "missing-message")
	assert.ErrorIs(t, err, util.ErrMessageNotFound)

	read, err := env.chat.MarkRead(ctx, b.ID, msg.ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)

	_, err = env.chat.MarkRead(ctx, b.ID, msg.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyRead)
}

func TestChatService_MarkAllRead(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "gina1")
	b := env.register(t, "harry")
	env.matchUsers(t, a.ID, b.ID)

	for _, text := range []string{"one", "two", "three"} {
		_, err := env.chat.SendMessage(ctx, a.ID, b.ID, text)
		require.NoError(t, err)
	}
	_, err := env.chat.SendMessage(ctx, b.ID, a.ID, "reply")
	require.NoError(t, err)

	n, err := env.chat.MarkAllRead(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = env.chat.MarkAllRead(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	msgs, err := env.chat.ListMessages(ctx, a.ID, b.ID)
	require.NoError(t, err)
	for _, m := range msgs {
		assert.Equal(t, m.ReceiverID == b.ID, m.IsRead, m.Text)
	}
}

func TestChatService_HistoryAfterUnmatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "irene")
	b := env.register(t, "jacob")
	env.matchUsers(t, a.ID, b.ID)

	_, err := env.chat.SendMessage(ctx, a.ID, b.ID, "before unmatch")
	require.NoError(t, err)

	_, err = env.match.Unmatch(ctx, a.ID, b.ID)
	require.NoError(t, err)

	_, err = env.chat.SendMessage(ctx, b.ID, a.ID, "still there?")
	assert.ErrorIs(t, err, util.ErrNotMatched)
	_, err = env.chat.ListMessages(ctx, b.ID, a.ID)
	assert.ErrorIs(t, err, util.ErrNotMatched)

	// 重新匹配后历史可见
	env.matchUsers(t, b.ID, a.ID)
	msgs, err := env.chat.ListMessages(ctx, b.ID, a.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "before unmatch", msgs[0].Text)
}

func TestListMatches_UnreadCount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "ursula")
	b := env.register(t, "victor")
	env.matchUsers(t, a.ID, b.ID)

	for _, text := range []string{"one", "two"} {
		_, err := env.chat.SendMessage(ctx, a.ID, b.ID, text)
		require.NoError(t, err)
	}

	matches, err := env.match.ListMatches(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, int64(2), matches[0].UnreadCount)

	// 自己发出的消息不计入
	mine, err := env.match.ListMatches(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Zero(t, mine[0].UnreadCount)

	_, err = env.chat.MarkAllRead(ctx, b.ID, a.ID)
	require.NoError(t, err)
	matches, err = env.match.ListMatches(ctx, b.ID)
	require.NoError(t, err)
	assert.Zero(t, matches[0].UnreadCount)
}

package membership

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []tgbotapi.MessageConfig
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

type fakeRemover struct {
	removed []int64
	err     error
}

func (f *fakeRemover) Remove(_ context.Context, thankedID int64) error {
	if f.err != nil {
		return f.err
	}
	f.removed = append(f.removed, thankedID)
	return nil
}

func TestHandleNewMembers_GreetsEveryone(t *testing.T) {
	sender := &fakeSender{}
	h := NewHandler(sender, &fakeRemover{})

	h.HandleNewMembers(context.Background(), -100500, []tgbotapi.User{
		{ID: 1, FirstName: "Alice"},
		{ID: 2, FirstName: "Bob"},
		{ID: 3, FirstName: "Carol"},
	})

	// Приветствуем каждого вступившего, не только первого
	require.Len(t, sender.sent, 3)
	assert.Equal(t, "Hello, Alice", sender.sent[0].Text)
	assert.Equal(t, "Hello, Bob", sender.sent[1].Text)
	assert.Equal(t, "Hello, Carol", sender.sent[2].Text)
	for _, msg := range sender.sent {
		assert.Equal(t, int64(-100500), msg.ChatID)
	}
}

func TestHandleMemberLeft_RemovesReputation(t *testing.T) {
	remover := &fakeRemover{}
	h := NewHandler(&fakeSender{}, remover)

	h.HandleMemberLeft(context.Background(), &tgbotapi.User{ID: 42, FirstName: "Dave"})

	assert.Equal(t, []int64{42}, remover.removed)
}

func TestHandleMemberLeft_NilUser(t *testing.T) {
	remover := &fakeRemover{}
	h := NewHandler(&fakeSender{}, remover)

	h.HandleMemberLeft(context.Background(), nil)

	assert.Empty(t, remover.removed)
}

func TestHandleMemberLeft_RemoveErrorDoesNotPanic(t *testing.T) {
	remover := &fakeRemover{err: errors.New("база недоступна")}
	h := NewHandler(&fakeSender{}, remover)

	h.HandleMemberLeft(context.Background(), &tgbotapi.User{ID: 42})
}

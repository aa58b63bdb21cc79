package reputation

import (
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const botSelfID = int64(1000)

// fakeMemberAPI отдаёт заранее заданный статус участника.
type fakeMemberAPI struct {
	status string
	err    error
	calls  int
}

func (f *fakeMemberAPI) GetChatMember(_ tgbotapi.GetChatMemberConfig) (tgbotapi.ChatMember, error) {
	f.calls++
	if f.err != nil {
		return tgbotapi.ChatMember{}, f.err
	}
	return tgbotapi.ChatMember{Status: f.status}, nil
}

func replyMessage(text string, from, replyFrom *tgbotapi.User) *tgbotapi.Message {
	return &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: -100500},
		From: from,
		Text: text,
		ReplyToMessage: &tgbotapi.Message{
			From: replyFrom,
		},
	}
}

func userAlice() *tgbotapi.User {
	return &tgbotapi.User{ID: 1, UserName: "alice", FirstName: "Alice", LastName: "Smith"}
}

func userBob() *tgbotapi.User {
	return &tgbotapi.User{ID: 2, UserName: "bob", FirstName: "Bob", LastName: "Jones"}
}

func TestIsThanksText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"plain thanks", "thanks", true},
		{"uppercase", "THANKS", true},
		{"mixed case", "Thanks", true},
		{"thx", "thx", true},
		{"nice", "nice", true},
		{"thumbs up emoji", "👍", true},
		{"inside sentence", "ok thanks a lot", true},
		{"trailing punctuation", "thanks!", true},
		{"wrapped punctuation", `"thanks?"`, true},
		{"punctuation inside token", "than.ks", true},
		{"embedded without space", "thanksgiving", false},
		{"unrelated text", "hello world", false},
		{"empty", "", false},
		{"only punctuation", "?!...", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsThanksText(tt.text))
		})
	}
}

func TestDetect_TextThanks(t *testing.T) {
	d := NewDetector(&fakeMemberAPI{status: "member"}, botSelfID)

	event, ok := d.Detect(replyMessage("thanks", userAlice(), userBob()))

	require.True(t, ok)
	assert.Equal(t, int64(-100500), event.ChatID)
	assert.Equal(t, int64(2), event.ThankedID)
	assert.Equal(t, "bob", event.ThankedUserName)
	assert.Equal(t, "Bob Jones", event.ThankedFullName)
	assert.Equal(t, "Alice Smith", event.ThankingFullName)
}

func TestDetect_StickerThumbsUp(t *testing.T) {
	d := NewDetector(&fakeMemberAPI{status: "member"}, botSelfID)

	msg := replyMessage("", userAlice(), userBob())
	msg.Sticker = &tgbotapi.Sticker{Emoji: "👍"}

	_, ok := d.Detect(msg)
	assert.True(t, ok)
}

func TestDetect_StickerOtherEmoji(t *testing.T) {
	d := NewDetector(&fakeMemberAPI{status: "member"}, botSelfID)

	// При стикере текст не смотрим: даже "thanks" не засчитывается
	msg := replyMessage("thanks", userAlice(), userBob())
	msg.Sticker = &tgbotapi.Sticker{Emoji: "😀"}

	_, ok := d.Detect(msg)
	assert.False(t, ok)
}

func TestDetect_RepliedAuthorLeft(t *testing.T) {
	d := NewDetector(&fakeMemberAPI{status: "left"}, botSelfID)

	_, ok := d.Detect(replyMessage("thanks", userAlice(), userBob()))
	assert.False(t, ok)
}

func TestDetect_StatusFetchFails(t *testing.T) {
	d := NewDetector(&fakeMemberAPI{err: errors.New("telegram down")}, botSelfID)

	// Не смогли проверить статус — пропускаем без паники
	_, ok := d.Detect(replyMessage("thanks", userAlice(), userBob()))
	assert.False(t, ok)
}

func TestDetect_SelfThanks(t *testing.T) {
	d := NewDetector(&fakeMemberAPI{status: "member"}, botSelfID)

	_, ok := d.Detect(replyMessage("thanks", userAlice(), userAlice()))
	assert.False(t, ok)

	// И стикером себя тоже не поблагодарить
	msg := replyMessage("", userAlice(), userAlice())
	msg.Sticker = &tgbotapi.Sticker{Emoji: "👍"}
	_, ok = d.Detect(msg)
	assert.False(t, ok)
}

func TestDetect_ReplyToBot(t *testing.T) {
	d := NewDetector(&fakeMemberAPI{status: "member"}, botSelfID)

	bot := &tgbotapi.User{ID: botSelfID, UserName: "reputationDemoBot", FirstName: "Bot"}
	_, ok := d.Detect(replyMessage("thanks", userAlice(), bot))
	assert.False(t, ok)
}

func TestDetect_MalformedMessages(t *testing.T) {
	api := &fakeMemberAPI{status: "member"}
	d := NewDetector(api, botSelfID)

	var ok bool

	_, ok = d.Detect(nil)
	assert.False(t, ok)

	// Ответ без автора оригинала
	_, ok = d.Detect(replyMessage("thanks", userAlice(), nil))
	assert.False(t, ok)

	// Сообщение без отправителя
	_, ok = d.Detect(replyMessage("thanks", nil, userBob()))
	assert.False(t, ok)

	// Не ответ
	msg := &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 1}, From: userAlice(), Text: "thanks"}
	_, ok = d.Detect(msg)
	assert.False(t, ok)

	// Ни одной проверки статуса для мусорных сообщений
	assert.Zero(t, api.calls)
}

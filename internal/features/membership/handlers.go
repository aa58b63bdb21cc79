// Package membership обрабатывает события жизненного цикла участников:
// приветствие вступивших и удаление репутации ушедших.
package membership

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// Sender — отправка сообщений в чат. *tgbotapi.BotAPI ему удовлетворяет.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// ReputationRemover — удаление записи репутации ушедшего участника.
// Реализуется сервисом репутации.
type ReputationRemover interface {
	Remove(ctx context.Context, thankedID int64) error
}

// Handler обрабатывает события участников.
type Handler struct {
	api         Sender
	reputations ReputationRemover
}

// NewHandler создаёт обработчик событий участников.
func NewHandler(api Sender, reputations ReputationRemover) *Handler {
	return &Handler{api: api, reputations: reputations}
}

// HandleNewMembers приветствует КАЖДОГО вступившего участника по имени.
func (h *Handler) HandleNewMembers(ctx context.Context, chatID int64, newMembers []tgbotapi.User) {
	for _, user := range newMembers {
		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("Hello, %s", user.FirstName))
		if _, err := h.api.Send(msg); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"chat_id": chatID,
				"user_id": user.ID,
			}).Error("Ошибка отправки приветствия")
		}
	}
}

// HandleMemberLeft удаляет запись репутации ушедшего участника.
// Если записи не было — это не ошибка.
func (h *Handler) HandleMemberLeft(ctx context.Context, user *tgbotapi.User) {
	if user == nil {
		return
	}
	if err := h.reputations.Remove(ctx, user.ID); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Error("Не удалось удалить репутацию ушедшего")
		return
	}
	log.WithField("user_id", user.ID).Info("Участник ушёл, репутация удалена")
}

// Package reputation — handlers.go обрабатывает ответы на сообщения:
// распознаёт «спасибо», начисляет репутацию и шлёт уведомление в чат.
package reputation

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// ChatAPI — срез Telegram API, нужный обработчику репутации.
// *tgbotapi.BotAPI ему удовлетворяет.
type ChatAPI interface {
	MemberAPI
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUserProfilePhotos(config tgbotapi.UserProfilePhotosConfig) (tgbotapi.UserProfilePhotos, error)
	GetFileDirectURL(fileID string) (string, error)
}

// Handler связывает детектор, сервис и Telegram API.
type Handler struct {
	detector *Detector
	service  *Service
	api      ChatAPI
	statsURL string
}

// NewHandler создаёт обработчик репутации.
func NewHandler(detector *Detector, service *Service, api ChatAPI, statsURL string) *Handler {
	return &Handler{detector: detector, service: service, api: api, statsURL: statsURL}
}

// HandleReply обрабатывает входящий ответ на сообщение.
// Ошибки начисления логируются и глотаются: обработка следующих
// сообщений не должна останавливаться, пользователю ничего не шлём.
func (h *Handler) HandleReply(ctx context.Context, msg *tgbotapi.Message) {
	event, ok := h.detector.Detect(msg)
	if !ok {
		return
	}

	// Аватарка — best effort: при любой ошибке остаётся пустая строка
	event.ThankedAvatar = h.resolveAvatarURL(event.ThankedID)

	rec, err := h.service.Award(ctx, event)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"chat_id":    event.ChatID,
			"thanked_id": event.ThankedID,
		}).Error("Не удалось начислить репутацию")
		return
	}

	h.sendNotification(event, rec.Reputation)

	log.WithFields(log.Fields{
		"chat_id":    event.ChatID,
		"thanked_id": event.ThankedID,
		"reputation": rec.Reputation,
	}).Info("Репутация начислена")
}

// sendNotification шлёт в чат поздравление с inline-кнопкой статистики.
// Текст сохранён из оригинального бота.
func (h *Handler) sendNotification(event *ThanksEvent, reputation int) {
	text := fmt.Sprintf(
		"Congrats, %s! Member %s increase your reputation! Your current reputation is %d",
		event.ThankedDisplay(), event.ThankingFullName, reputation,
	)

	msg := tgbotapi.NewMessage(event.ChatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("Chat statistic", h.statsURL),
		),
	)

	if _, err := h.api.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", event.ChatID).Error("Ошибка отправки уведомления")
	}
}

// resolveAvatarURL возвращает прямую ссылку на первую аватарку участника.
// Берётся первый вариант размера первой фотографии профиля.
// Нет фотографий или API недоступен — возвращается пустая строка.
func (h *Handler) resolveAvatarURL(userID int64) string {
	photos, err := h.api.GetUserProfilePhotos(tgbotapi.NewUserProfilePhotos(userID))
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Debug("GetUserProfilePhotos failed")
		return ""
	}
	if len(photos.Photos) == 0 || len(photos.Photos[0]) == 0 {
		return ""
	}

	url, err := h.api.GetFileDirectURL(photos.Photos[0][0].FileID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Debug("GetFileDirectURL failed")
		return ""
	}
	return url
}

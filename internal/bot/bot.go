// Package bot содержит главный модуль бота — запуск polling и диспетчеризацию
// входящих событий по обработчикам.
package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"reputation-bot/internal/bot/middleware"
	"reputation-bot/internal/config"
	"reputation-bot/internal/features/membership"
	"reputation-bot/internal/features/reputation"
)

// Bot — главная структура бота, объединяющая транспорт и обработчики.
type Bot struct {
	api *tgbotapi.BotAPI
	cfg *config.Config

	reputationHandler *reputation.Handler
	membershipHandler *membership.Handler

	// ограничитель параллелизма обработки апдейтов
	inflight chan struct{}
}

// New создаёт новый экземпляр бота со всеми зависимостями.
func New(
	api *tgbotapi.BotAPI,
	cfg *config.Config,
	reputationHandler *reputation.Handler,
	membershipHandler *membership.Handler,
) *Bot {
	// BotMaxInflight уже проверен в config.Validate
	return &Bot{
		api:               api,
		cfg:               cfg,
		reputationHandler: reputationHandler,
		membershipHandler: membershipHandler,
		inflight:          make(chan struct{}, cfg.BotMaxInflight),
	}
}

// Start запускает polling обновлений от Telegram.
// Возвращается только после того, как все начатые обработчики завершились:
// вызывающий может безопасно закрывать пул БД после выхода из Start.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.BotUpdateTimeoutSeconds

	updates := b.api.GetUpdatesChan(u)

	log.WithFields(log.Fields{
		"max_inflight": b.cfg.BotMaxInflight,
		"timeout_sec":  b.cfg.BotUpdateTimeoutSeconds,
	}).Info("Бот запущен и ожидает сообщения...")

	for {
		select {
		case <-ctx.Done():
			log.Info("Бот останавливается (ctx done)...")
			b.api.StopReceivingUpdates()
			b.waitInflight()
			return

		case update, ok := <-updates:
			if !ok {
				log.Info("Канал updates закрыт, бот остановлен")
				b.waitInflight()
				return
			}

			// лимит параллелизма
			b.inflight <- struct{}{}
			go func(upd tgbotapi.Update) {
				defer func() { <-b.inflight }()
				b.handleUpdate(ctx, upd)
			}(update)
		}
	}
}

// waitInflight дожидается завершения всех запущенных обработчиков,
// заполняя семафор до конца.
func (b *Bot) waitInflight() {
	for i := 0; i < cap(b.inflight); i++ {
		b.inflight <- struct{}{}
	}
	log.Info("Все обработчики апдейтов завершены")
}

// handleUpdate разбирает одно обновление и передаёт его ровно одному
// обработчику: вступление, уход или ответ на сообщение.
// Остальные апдейты (обычные сообщения без ответа, сервисные) игнорируются.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer middleware.RecoverFromPanic(update.UpdateID)

	message := update.Message
	if message == nil || message.Chat == nil {
		return
	}

	switch {
	case message.NewChatMembers != nil:
		b.membershipHandler.HandleNewMembers(ctx, message.Chat.ID, message.NewChatMembers)

	case message.LeftChatMember != nil:
		b.membershipHandler.HandleMemberLeft(ctx, message.LeftChatMember)

	case message.ReplyToMessage != nil:
		if message.From == nil {
			// сообщение от канала/анонимного админа — некому начислять
			return
		}
		middleware.LogMessage(message)
		b.reputationHandler.HandleReply(ctx, message)
	}
}

// SendMessageToChat отправляет сообщение в чат (для дайджеста).
func (b *Bot) SendMessageToChat(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки сообщения")
	}
}

// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает расписание: еженедельный дайджест
// с топом репутации в настроенный чат.
package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"reputation-bot/internal/features/reputation"
)

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron         *cron.Cron
	reputations  *reputation.Service
	sendFunc     func(chatID int64, text string)
	digestChatID int64
	digestTopN   int
}

// NewScheduler создаёт планировщик задач в заданном часовом поясе.
// При digestChatID == 0 дайджест не планируется.
func NewScheduler(
	reputations *reputation.Service,
	sendFunc func(chatID int64, text string),
	timezone string,
	digestChatID int64,
	digestTopN int,
) *Scheduler {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		log.WithError(err).Warnf("Не удалось загрузить %s, используем UTC", timezone)
		loc = time.UTC
	}

	return &Scheduler{
		cron:         cron.New(cron.WithLocation(loc)),
		reputations:  reputations,
		sendFunc:     sendFunc,
		digestChatID: digestChatID,
		digestTopN:   digestTopN,
	}
}

// Start запускает все фоновые задачи.
func (s *Scheduler) Start(ctx context.Context) {
	if s.digestChatID == 0 {
		log.Info("Дайджест выключен (DIGEST_CHAT_ID=0), планировщик не запущен")
		return
	}

	// Топ репутации по понедельникам в 12:00
	s.cron.AddFunc("0 12 * * 1", func() {
		log.Info("[CRON] Еженедельный дайджест репутации")
		if err := s.sendDigest(ctx); err != nil {
			log.WithError(err).Error("[CRON] Ошибка дайджеста")
		}
	})

	s.cron.Start()
	log.Info("Планировщик задач запущен")
}

// Stop останавливает планировщик.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}

// sendDigest собирает топ репутации и отправляет его в чат дайджеста.
// Пустой рейтинг — ничего не шлём.
func (s *Scheduler) sendDigest(ctx context.Context) error {
	top, err := s.reputations.Top(ctx, s.digestTopN)
	if err != nil {
		return err
	}
	if len(top) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("🏆 Reputation leaderboard:\n")
	for i, rec := range top {
		name := rec.FullName
		if rec.UserName != "" {
			name += " (@" + rec.UserName + ")"
		}
		fmt.Fprintf(&sb, "%d. %s — %d\n", i+1, name, rec.Reputation)
	}

	s.sendFunc(s.digestChatID, sb.String())
	return nil
}

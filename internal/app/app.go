// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: создаёт БД-пул, репозиторий, сервис, обработчики,
// HTTP-сервер и собирает всё в один объект Bot.
package app

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"reputation-bot/internal/api"
	"reputation-bot/internal/bot"
	"reputation-bot/internal/config"
	"reputation-bot/internal/db/postgres"
	"reputation-bot/internal/features/membership"
	"reputation-bot/internal/features/reputation"
	"reputation-bot/internal/jobs"
)

// App содержит все компоненты приложения.
type App struct {
	Bot       *bot.Bot
	API       *api.Server
	Scheduler *jobs.Scheduler
	DB        *pgxpool.Pool
	BotAPI    *tgbotapi.BotAPI
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен — компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. База данных ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	if err := runMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ошибка миграций: %w", err)
	}

	// === 2. Telegram Bot API ===
	botAPI, err := tgbotapi.NewBotAPI(cfg.BotAPIToken)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("ошибка создания Telegram API: %w", err)
	}
	botAPI.Debug = cfg.AppEnv == "development"
	log.Infof("Авторизован как @%s", botAPI.Self.UserName)

	// === 3. Репутация ===
	reputationRepo := reputation.NewRepository(pool)
	reputationService := reputation.NewService(reputationRepo)
	detector := reputation.NewDetector(botAPI, botAPI.Self.ID)
	reputationHandler := reputation.NewHandler(detector, reputationService, botAPI, cfg.StatsURL)

	// === 4. Участники ===
	membershipHandler := membership.NewHandler(botAPI, reputationService)

	// === 5. Бот ===
	b := bot.New(botAPI, cfg, reputationHandler, membershipHandler)

	// === 6. HTTP API ===
	apiServer := api.NewServer(reputationService, cfg.HTTPPort)

	// === 7. Планировщик задач ===
	scheduler := jobs.NewScheduler(
		reputationService, b.SendMessageToChat,
		cfg.AppTimezone, cfg.DigestChatID, cfg.DigestTopN,
	)

	return &App{
		Bot:       b,
		API:       apiServer,
		Scheduler: scheduler,
		DB:        pool,
		BotAPI:    botAPI,
	}, nil
}

// runMigrations выполняет все SQL-миграции.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return err
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migration001Reputations},
	}

	for _, m := range migrations {
		if err := postgres.ExecMigrationSQL(ctx, pool, m.version, m.sql); err != nil {
			return fmt.Errorf("миграция %d: %w", m.version, err)
		}
		log.Infof("Миграция %d применена", m.version)
	}

	return nil
}

// SQL-миграции встроены в код для упрощения деплоя.

var migration001Reputations = `
CREATE TABLE IF NOT EXISTS reputations (
    id BIGSERIAL PRIMARY KEY,
    telegram_id VARCHAR(64) UNIQUE NOT NULL,
    user_name VARCHAR(255) NOT NULL DEFAULT '',
    user_avatar TEXT NOT NULL DEFAULT '',
    full_name VARCHAR(255) NOT NULL DEFAULT '',
    reputation INTEGER NOT NULL DEFAULT 1,
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_reputations_telegram_id ON reputations(telegram_id);
CREATE INDEX IF NOT EXISTS idx_reputations_reputation ON reputations(reputation DESC);
`

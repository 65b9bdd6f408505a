// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: создаёт клиент Bot API, сервис модерации,
// журнал (если включён), фильтр и собирает всё в один объект Bot.
package app

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/joinguard/internal/bot"
	"serotonyl.ru/joinguard/internal/bot/filters"
	"serotonyl.ru/joinguard/internal/config"
	"serotonyl.ru/joinguard/internal/db/postgres"
	"serotonyl.ru/joinguard/internal/features/moderation"
	"serotonyl.ru/joinguard/internal/jobs"
)

// App содержит все компоненты приложения.
// DB и Scheduler равны nil, если журнал выключен.
type App struct {
	Bot       *bot.Bot
	Scheduler *jobs.Scheduler
	DB        *pgxpool.Pool
	BotAPI    *tgbotapi.BotAPI
}

// New создаёт и инициализирует приложение.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}

	// === 1. Telegram Bot API ===
	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания Telegram API: %w", err)
	}
	botAPI.Debug = cfg.AppEnv == "development"
	log.Infof("Авторизован как @%s", botAPI.Self.UserName)
	a.BotAPI = botAPI

	policy, err := moderation.ParsePolicy(cfg.OnActionFailure)
	if err != nil {
		return nil, err
	}

	// === 2. Наблюдатели за действиями ===
	observers := []moderation.Observer{moderation.MetricsObserver{}}

	if cfg.JournalEnabled {
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
		}
		if err := postgres.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ошибка миграций: %w", err)
		}
		repo := moderation.NewRepository(pool)
		observers = append(observers, moderation.NewJournal(repo))

		a.DB = pool
		a.Scheduler = jobs.NewScheduler(repo, cfg.JournalRetention, cfg.JournalPruneSchedule, cfg.Location())
	}

	// === 3. Сервис и обработчик ===
	service := moderation.NewService(moderation.NewTelegramAPI(botAPI), policy, observers...)
	handler := moderation.NewHandler(service, botAPI.Self.ID)

	log.WithFields(log.Fields{
		"policy":         service.Policy(),
		"journal":        cfg.JournalEnabled,
		"moderated_chat": cfg.ModeratedChatIDs,
	}).Info("Модерация настроена")

	// === 4. Собираем бота ===
	a.Bot = bot.New(botAPI, cfg, filters.NewChatFilter(cfg.ModeratedChatIDs), handler)

	return a, nil
}

// Close освобождает ресурсы приложения.
func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

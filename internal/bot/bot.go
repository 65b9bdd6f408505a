// Package bot содержит главный модуль бота — запуск и остановку long polling.
// Каждый апдейт обрабатывается в своей горутине, число одновременных
// обработок ограничено BOT_MAX_INFLIGHT.
package bot

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/joinguard/internal/bot/filters"
	"serotonyl.ru/joinguard/internal/bot/middleware"
	"serotonyl.ru/joinguard/internal/config"
	"serotonyl.ru/joinguard/internal/metrics"
)

// UpdateHandler — реакция на один апдейт. Ошибки логируются, повторов нет.
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update tgbotapi.Update) error
}

// Bot — long polling и раздача апдейтов обработчику.
type Bot struct {
	api *tgbotapi.BotAPI
	cfg *config.Config

	chatFilter *filters.ChatFilter
	handler    UpdateHandler

	// ограничитель параллелизма обработки апдейтов
	inflight chan struct{}
	wg       sync.WaitGroup
}

// New создаёт новый экземпляр бота.
func New(api *tgbotapi.BotAPI, cfg *config.Config, chatFilter *filters.ChatFilter, handler UpdateHandler) *Bot {
	maxInFlight := cfg.BotMaxInflight
	if maxInFlight <= 0 {
		maxInFlight = 64
	}

	return &Bot{
		api:        api,
		cfg:        cfg,
		chatFilter: chatFilter,
		handler:    handler,
		inflight:   make(chan struct{}, maxInFlight),
	}
}

// Start запускает polling обновлений от Telegram и блокируется до отмены ctx.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.BotUpdateTimeoutSeconds
	u.AllowedUpdates = []string{"message"}

	updates := b.api.GetUpdatesChan(u)

	log.WithFields(log.Fields{
		"max_inflight": b.cfg.BotMaxInflight,
		"timeout_sec":  b.cfg.BotUpdateTimeoutSeconds,
	}).Info("Бот запущен и ожидает апдейты...")

	b.dispatch(ctx, updates)
	b.api.StopReceivingUpdates()
}

// dispatch читает апдейты, пока не закроется канал или не отменится ctx,
// затем ждёт уже запущенные обработки.
func (b *Bot) dispatch(ctx context.Context, updates <-chan tgbotapi.Update) {
	defer b.wg.Wait()

	for {
		select {
		case <-ctx.Done():
			log.Info("Бот останавливается (ctx done)...")
			return

		case update, ok := <-updates:
			if !ok {
				log.Info("Канал updates закрыт, бот остановлен")
				return
			}

			// лимит параллелизма
			select {
			case b.inflight <- struct{}{}:
			case <-ctx.Done():
				return
			}
			b.wg.Add(1)
			go func(upd tgbotapi.Update) {
				defer b.wg.Done()
				defer func() { <-b.inflight }()
				b.handleUpdate(ctx, upd)
			}(update)
		}
	}
}

// handleUpdate обрабатывает одно обновление от Telegram.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer middleware.RecoverFromPanic(update.UpdateID)

	metrics.InflightUpdates.Inc()
	defer metrics.InflightUpdates.Dec()

	middleware.LogUpdate(update)

	if update.Message != nil && !b.chatFilter.CheckAccess(update.Message) {
		metrics.UpdatesTotal.WithLabelValues("filtered").Inc()
		return
	}

	if err := b.handler.HandleUpdate(ctx, update); err != nil {
		log.WithError(err).WithField("update_id", update.UpdateID).Error("Апдейт не обработан (без повтора)")
	}
}

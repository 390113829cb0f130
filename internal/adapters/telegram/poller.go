package telegram

import (
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

const pollTimeoutSeconds = 60

// UpdateHandler обрабатывает один апдейт.
type UpdateHandler func(ctx context.Context, upd tgbotapi.Update)

// Poller получает апдейты long polling'ом и раздаёт их по горутинам.
type Poller struct {
	bot *tgbotapi.BotAPI
	log zerolog.Logger
}

// NewPoller создаёт поллер.
func NewPoller(bot *tgbotapi.BotAPI, log zerolog.Logger) *Poller {
	return &Poller{bot: bot, log: log}
}

// Run сбрасывает апдейты, накопленные пока бот был офлайн, и обрабатывает
// новые до отмены ctx. Перед возвратом дожидается активных обработчиков.
func (p *Poller) Run(ctx context.Context, handle UpdateHandler) error {
	if _, err := p.bot.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true}); err != nil {
		return fmt.Errorf("сброс накопленных апдейтов: %w", err)
	}

	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = pollTimeoutSeconds
	updates := p.bot.GetUpdatesChan(cfg)
	p.log.Info().Msg("long polling запущен")

	handlerCtx := context.WithoutCancel(ctx)
	var wg sync.WaitGroup
	defer wg.Wait()
	for {
		select {
		case <-ctx.Done():
			p.bot.StopReceivingUpdates()
			p.log.Info().Msg("long polling остановлен")
			return nil
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				handle(handlerCtx, upd)
			}()
		}
	}
}

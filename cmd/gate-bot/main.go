package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"

	"tg-start-gate/internal/adapters/bot"
	"tg-start-gate/internal/adapters/telegram"
	"tg-start-gate/internal/infra/config"
	httpinfra "tg-start-gate/internal/infra/http"
	"tg-start-gate/internal/infra/log"
	"tg-start-gate/internal/infra/metrics"
	"tg-start-gate/internal/usecase/gate"
)

func main() {
	cfg := config.Load()
	logger := log.NewLogger(cfg.AppEnv)

	gateCfg, err := cfg.GateConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("некорректная конфигурация проверки")
	}

	metrics.MustRegister(prometheus.DefaultRegisterer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := telegram.UseLogger(logger.With().Str("component", "tgbotapi").Logger()); err != nil {
		logger.Fatal().Err(err).Msg("не удалось подключить логгер Bot API")
	}
	endpoint := cfg.Telegram.APIEndpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	botAPI, err := tgbotapi.NewBotAPIWithAPIEndpoint(cfg.Telegram.Token, endpoint)
	if err != nil {
		logger.Fatal().Err(err).Msg("не удалось создать бота")
	}

	client := telegram.NewClient(botAPI, logger.With().Str("component", "telegram").Logger())
	gateService := gate.NewService(client, client, gateCfg, logger.With().Str("component", "gate").Logger())
	h := bot.NewHandler(gateService, client, logger.With().Str("component", "bot").Logger(), gateCfg.GatedCommand(), botAPI.Self.UserName)

	srv := httpinfra.NewServer(logger.With().Str("component", "health").Logger(), cfg.ListenAddr())
	go func() {
		if err := srv.Start(); err != nil {
			logger.Error().Err(err).Msg("HTTP сервер остановлен")
		}
	}()
	if cfg.MetricsAddr != "" {
		metrics.StartServer(ctx, logger, cfg.MetricsAddr)
	}

	logger.Info().
		Str("bot", botAPI.Self.UserName).
		Str("required_chat", gateCfg.RequiredChat.Raw()).
		Bool("silent", gateCfg.Silent).
		Msg("бот запущен")

	poller := telegram.NewPoller(botAPI, logger.With().Str("component", "poller").Logger())
	runErr := poller.Run(ctx, h.HandleUpdate)

	logger.Info().Msg("остановка бота")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP сервер не остановился корректно")
	}
	if runErr != nil {
		logger.Fatal().Err(runErr).Msg("long polling завершился с ошибкой")
	}
}

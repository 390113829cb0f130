package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"tg-start-gate/internal/domain"
)

var (
	ErrMissingToken        = errors.New("BOT_TOKEN не задан: укажите BOT_TOKEN=xxx")
	ErrMissingRequiredChat = errors.New("REQUIRED_CHAT не задан: укажите REQUIRED_CHAT=@xxx или -100xxx")
)

// AppConfig описывает конфигурацию бота.
type AppConfig struct {
	AppEnv      string `envconfig:"APP_ENV" default:"prod"`
	Port        int    `envconfig:"PORT" default:"5000"`
	MetricsAddr string `envconfig:"METRICS_ADDR"`

	Telegram struct {
		Token       string `envconfig:"BOT_TOKEN"`
		APIEndpoint string `envconfig:"TG_API_ENDPOINT"`
	} `envconfig:""`

	Gate struct {
		RequiredChat string `envconfig:"REQUIRED_CHAT"`
		JoinURL      string `envconfig:"JOIN_URL"`
		Silent       string `envconfig:"SILENT_FOR_NOT_JOINED" default:"false"`
		Command      string `envconfig:"GATED_COMMAND" default:"start"`
	} `envconfig:""`
}

// Parse читает и проверяет конфиг из окружения.
func Parse() (AppConfig, error) {
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("чтение окружения: %w", err)
	}
	cfg.Telegram.Token = strings.TrimSpace(cfg.Telegram.Token)
	cfg.Gate.RequiredChat = strings.TrimSpace(cfg.Gate.RequiredChat)
	cfg.Gate.JoinURL = strings.TrimSpace(cfg.Gate.JoinURL)
	cfg.Gate.Command = strings.TrimPrefix(strings.TrimSpace(cfg.Gate.Command), "/")

	if cfg.Telegram.Token == "" {
		return AppConfig{}, ErrMissingToken
	}
	if cfg.Gate.RequiredChat == "" {
		return AppConfig{}, ErrMissingRequiredChat
	}
	return cfg, nil
}

// Load загружает конфиг из окружения и завершает процесс при ошибке.
func Load() AppConfig {
	cfg, err := Parse()
	if err != nil {
		log.Fatalf("не удалось загрузить конфиг: %v", err)
	}
	return cfg
}

// GateConfig собирает неизменяемые настройки проверки членства.
func (c AppConfig) GateConfig() (domain.GateConfig, error) {
	chat, err := domain.ParseChatRef(c.Gate.RequiredChat)
	if err != nil {
		return domain.GateConfig{}, fmt.Errorf("REQUIRED_CHAT: %w", err)
	}
	return domain.GateConfig{
		RequiredChat: chat,
		JoinURL:      c.Gate.JoinURL,
		Silent:       c.SilentForNotJoined(),
		Command:      c.Gate.Command,
	}, nil
}

// SilentForNotJoined включается только значением "true" в любом регистре.
func (c AppConfig) SilentForNotJoined() bool {
	return strings.EqualFold(strings.TrimSpace(c.Gate.Silent), "true")
}

// ListenAddr возвращает адрес health-сервера.
func (c AppConfig) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

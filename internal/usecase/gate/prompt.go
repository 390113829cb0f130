package gate

import (
	"fmt"

	"tg-start-gate/internal/domain"
)

const (
	promptBody = "🚫 Чтобы пользоваться ботом, нужно вступить в указанный канал/группу.\n" +
		"После вступления нажмите «Я вступил, проверить»."
	joinButtonText    = "✅ Перейти в канал/группу"
	recheckButtonText = "🔄 Я вступил, проверить"
)

// BuildPrompt собирает приглашение вступить. Диагностика, если есть,
// добавляется перед основным текстом, а не заменяет его.
func BuildPrompt(cfg domain.GateConfig, diagnostic string) domain.Prompt {
	text := promptBody
	if diagnostic != "" {
		text = diagnostic + "\n\n" + promptBody
	}
	buttons := make([]domain.Button, 0, 2)
	if link := cfg.JoinLink(); link != "" {
		buttons = append(buttons, domain.Button{Text: joinButtonText, URL: link})
	}
	buttons = append(buttons, domain.Button{Text: recheckButtonText, Data: domain.RecheckAction})
	return domain.Prompt{Text: text, Buttons: buttons}
}

func lookupDiagnostic(cfg domain.GateConfig, err *domain.LookupError) string {
	return fmt.Sprintf(
		"⚠️ Не удалось проверить членство (возможно, REQUIRED_CHAT указан неверно или у бота нет доступа).\nREQUIRED_CHAT=%s\nОшибка: %s: %s",
		cfg.RequiredChat.Raw(), err.Type, err.Message,
	)
}

func recheckFailedText(err *domain.LookupError) string {
	return fmt.Sprintf("⚠️ Повторная проверка не удалась: %s: %s", err.Type, err.Message)
}

func confirmedText(cfg domain.GateConfig) string {
	return fmt.Sprintf("🎉 Вступление подтверждено! Отправьте /%s, чтобы продолжить.", cfg.GatedCommand())
}

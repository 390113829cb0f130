package telegram

import "strings"

const messageLimit = 4096

// FitMessage обрезает текст до лимита Telegram, чтобы приглашение всегда
// уходило одним сообщением. Предпочитает резать по границе строки.
func FitMessage(text string) string {
	trimmed := strings.TrimSpace(text)
	runes := []rune(trimmed)
	if len(runes) <= messageLimit {
		return trimmed
	}

	const ellipsis = "…"
	end := messageLimit - 1
	for i := end; i > messageLimit/2; i-- {
		if runes[i-1] == '\n' {
			end = i
			break
		}
	}
	return strings.TrimRight(string(runes[:end]), "\n") + ellipsis
}

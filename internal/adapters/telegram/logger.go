package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// botLogger перенаправляет внутренние сообщения tgbotapi в zerolog.
type botLogger struct {
	log zerolog.Logger
}

// UseLogger подключает zerolog к библиотеке Bot API.
func UseLogger(log zerolog.Logger) error {
	return tgbotapi.SetLogger(botLogger{log: log})
}

func (l botLogger) Println(v ...interface{}) {
	l.log.Warn().Msg(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

func (l botLogger) Printf(format string, v ...interface{}) {
	l.log.Warn().Msgf(format, v...)
}

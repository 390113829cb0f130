package telegram

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"tg-start-gate/internal/domain"
	"tg-start-gate/internal/infra/metrics"
)

// Client реализует domain.MembershipOracle и domain.Messenger поверх Bot API.
// Один экземпляр разделяется всеми обработчиками.
type Client struct {
	bot *tgbotapi.BotAPI
	log zerolog.Logger
}

// NewClient создаёт клиента.
func NewClient(bot *tgbotapi.BotAPI, log zerolog.Logger) *Client {
	return &Client{bot: bot, log: log}
}

// CheckMembership вызывает getChatMember ровно один раз.
func (c *Client) CheckMembership(ctx context.Context, chat domain.ChatRef, userID int64) (domain.MembershipStatus, error) {
	if err := ctx.Err(); err != nil {
		return "", classifyError(err)
	}
	cfg := tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{UserID: userID},
	}
	if chat.IsNumeric() {
		cfg.ChatID = chat.ID()
	} else {
		cfg.SuperGroupUsername = chat.Username()
	}

	start := time.Now()
	member, err := c.bot.GetChatMember(cfg)
	metrics.ObserveNetworkRequest("telegram_bot", "get_chat_member", start, err)
	if err != nil {
		return "", classifyError(err)
	}
	status := domain.ParseMembershipStatus(member.Status)
	if status == domain.StatusUnknown {
		c.log.Warn().Str("status", member.Status).Int64("user_id", userID).Msg("неизвестный статус участника")
	}
	return status, nil
}

// Send отправляет одно сообщение обычным текстом, без parse_mode.
func (c *Client) Send(ctx context.Context, chatID int64, prompt domain.Prompt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(chatID, FitMessage(prompt.Text))
	if keyboard := inlineKeyboard(prompt.Buttons); keyboard != nil {
		msg.ReplyMarkup = keyboard
	}
	start := time.Now()
	_, err := c.bot.Send(msg)
	metrics.ObserveNetworkRequest("telegram_bot", "send_message", start, err)
	if err != nil {
		metrics.BotSendErrors.Inc()
		return fmt.Errorf("send message to %d: %w", chatID, err)
	}
	return nil
}

// AnswerCallback подтверждает нажатие инлайн-кнопки.
func (c *Client) AnswerCallback(ctx context.Context, callbackID string) error {
	if callbackID == "" {
		return nil
	}
	start := time.Now()
	_, err := c.bot.Request(tgbotapi.NewCallback(callbackID, ""))
	metrics.ObserveNetworkRequest("telegram_bot", "answer_callback", start, err)
	if err != nil {
		return fmt.Errorf("answer callback: %w", err)
	}
	return nil
}

func inlineKeyboard(buttons []domain.Button) *tgbotapi.InlineKeyboardMarkup {
	if len(buttons) == 0 {
		return nil
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(buttons))
	for _, b := range buttons {
		if b.URL != "" {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL(b.Text, b.URL)))
			continue
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data)))
	}
	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &keyboard
}

// classifyError приводит ошибку Bot API к LookupError с именем типа,
// которое показывается пользователю в диагностике.
func classifyError(err error) *domain.LookupError {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		return &domain.LookupError{Type: apiErrorType(apiErr), Message: apiErr.Message, Err: err}
	}
	var apiVal tgbotapi.Error
	if errors.As(err, &apiVal) {
		return &domain.LookupError{Type: apiErrorType(&apiVal), Message: apiVal.Message, Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.LookupError{Type: "TimedOut", Message: err.Error(), Err: err}
	}
	if errors.Is(err, context.Canceled) {
		return &domain.LookupError{Type: "Canceled", Message: err.Error(), Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return &domain.LookupError{Type: "TimedOut", Message: err.Error(), Err: err}
		}
		return &domain.LookupError{Type: "NetworkError", Message: err.Error(), Err: err}
	}
	return &domain.LookupError{Type: "TelegramError", Message: err.Error(), Err: err}
}

func apiErrorType(err *tgbotapi.Error) string {
	switch {
	case err.RetryAfter > 0 || err.Code == 429:
		return "RetryAfter"
	case err.MigrateToChatID != 0:
		return "ChatMigrated"
	}
	switch err.Code {
	case 400:
		return "BadRequest"
	case 401, 404:
		return "InvalidToken"
	case 403:
		return "Forbidden"
	default:
		return "TelegramError"
	}
}

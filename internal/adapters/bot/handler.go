package bot

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tg-start-gate/internal/domain"
	"tg-start-gate/internal/infra/metrics"
	"tg-start-gate/internal/usecase/gate"
)

const startPassedText = "✅ Проверка пройдена: переходим к основной логике бота."

// Gate — сценарии проверки членства, которые нужны обработчику.
type Gate interface {
	Evaluate(ctx context.Context, attempt gate.Attempt, action gate.ProtectedAction) (domain.Outcome, error)
	Recheck(ctx context.Context, req gate.RecheckRequest) (domain.Outcome, error)
}

// Handler обслуживает апдейты бота.
type Handler struct {
	gate      Gate
	messenger domain.Messenger
	log       zerolog.Logger
	command   string
	username  string
}

// NewHandler создаёт обработчик. command — имя закрытой команды без слэша,
// username — имя бота без @, по нему отсекаются команды вида /start@other_bot.
func NewHandler(gate Gate, messenger domain.Messenger, log zerolog.Logger, command, username string) *Handler {
	if command == "" {
		command = domain.DefaultCommand
	}
	return &Handler{gate: gate, messenger: messenger, log: log, command: command, username: strings.TrimPrefix(username, "@")}
}

// HandleUpdate обрабатывает входящий апдейт. Ошибки и паники логируются
// и не выходят за пределы апдейта.
func (h *Handler) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	logger := h.log.With().
		Int("update_id", upd.UpdateID).
		Str("interaction_id", uuid.NewString()).
		Logger()
	defer func() {
		if r := recover(); r != nil {
			metrics.HandlerPanics.Inc()
			logger.Error().
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("необработанная ошибка в обработчике")
		}
	}()

	var err error
	switch {
	case upd.Message != nil:
		err = h.handleMessage(ctx, upd.Message)
	case upd.CallbackQuery != nil:
		err = h.handleCallback(ctx, upd.CallbackQuery)
	}
	if err != nil {
		logger.Error().Err(err).Msg("необработанная ошибка в обработчике")
	}
}

func (h *Handler) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if !msg.IsCommand() {
		return h.handleText(ctx, msg)
	}
	if !strings.EqualFold(msg.Command(), h.command) || !h.addressedToMe(msg.CommandWithAt()) {
		return nil
	}
	if msg.From == nil || msg.Chat == nil {
		return nil
	}
	attempt := gate.Attempt{UserID: msg.From.ID, ChatID: msg.Chat.ID}
	_, err := h.gate.Evaluate(ctx, attempt, func(ctx context.Context) error {
		return h.handleStart(ctx, msg)
	})
	return err
}

// addressedToMe сообщает, адресована ли команда этому боту.
// Команда без @suffix адресована всем ботам в чате.
func (h *Handler) addressedToMe(commandWithAt string) bool {
	i := strings.Index(commandWithAt, "@")
	if i < 0 {
		return true
	}
	return strings.EqualFold(commandWithAt[i+1:], h.username)
}

// handleText — обработчик обычных сообщений без проверки членства.
// Оставлен пустым под будущую бизнес-логику.
func (h *Handler) handleText(ctx context.Context, msg *tgbotapi.Message) error {
	return nil
}

// handleStart — бизнес-логика закрытой команды. Вызывается только после проверки.
func (h *Handler) handleStart(ctx context.Context, msg *tgbotapi.Message) error {
	if err := h.messenger.Send(ctx, msg.Chat.ID, domain.Prompt{Text: startPassedText}); err != nil {
		return fmt.Errorf("ответ на /%s: %w", h.command, err)
	}
	return nil
}

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb.Data != domain.RecheckAction {
		if err := h.messenger.AnswerCallback(ctx, cb.ID); err != nil {
			h.log.Error().Err(err).Msg("не удалось ответить на callback")
		}
		return nil
	}
	req := gate.RecheckRequest{CallbackID: cb.ID}
	if cb.From != nil {
		req.UserID = cb.From.ID
	}
	if cb.Message != nil && cb.Message.Chat != nil {
		req.ChatID = cb.Message.Chat.ID
	}
	_, err := h.gate.Recheck(ctx, req)
	return err
}

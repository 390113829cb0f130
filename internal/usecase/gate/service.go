package gate

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"tg-start-gate/internal/domain"
	"tg-start-gate/internal/infra/metrics"
)

// ProtectedAction — бизнес-логика, которая выполняется только после проверки.
type ProtectedAction func(ctx context.Context) error

// Attempt описывает попытку вызвать закрытую команду.
type Attempt struct {
	UserID int64
	ChatID int64
}

// RecheckRequest описывает нажатие кнопки повторной проверки.
type RecheckRequest struct {
	CallbackID string
	UserID     int64
	ChatID     int64
}

// Service проверяет членство пользователя перед закрытой командой.
// Состояния между вызовами не хранит.
type Service struct {
	oracle    domain.MembershipOracle
	messenger domain.Messenger
	cfg       domain.GateConfig
	log       zerolog.Logger
}

// NewService создаёт сервис проверки.
func NewService(oracle domain.MembershipOracle, messenger domain.Messenger, cfg domain.GateConfig, log zerolog.Logger) *Service {
	return &Service{oracle: oracle, messenger: messenger, cfg: cfg, log: log}
}

// Config возвращает настройки проверки.
func (s *Service) Config() domain.GateConfig { return s.cfg }

// Check выполняет ровно один запрос членства и классифицирует результат.
func (s *Service) Check(ctx context.Context, userID int64) domain.Outcome {
	status, err := s.oracle.CheckMembership(ctx, s.cfg.RequiredChat, userID)
	if err != nil {
		var lookupErr *domain.LookupError
		if !errors.As(err, &lookupErr) {
			lookupErr = &domain.LookupError{Type: fmt.Sprintf("%T", err), Message: err.Error(), Err: err}
		}
		return domain.Outcome{Kind: domain.OutcomeLookupFailed, Err: lookupErr}
	}
	if status.IsJoined() {
		return domain.Outcome{Kind: domain.OutcomePassed, Status: status}
	}
	return domain.Outcome{Kind: domain.OutcomeBlocked, Status: status}
}

// Evaluate проверяет членство и либо вызывает action, либо показывает приглашение.
func (s *Service) Evaluate(ctx context.Context, attempt Attempt, action ProtectedAction) (domain.Outcome, error) {
	outcome := s.Check(ctx, attempt.UserID)
	metrics.ObserveGate("command", string(outcome.Kind))
	logger := s.log.With().Int64("user_id", attempt.UserID).Str("outcome", string(outcome.Kind)).Logger()

	switch outcome.Kind {
	case domain.OutcomeLookupFailed:
		logger.Warn().Err(outcome.Err).Str("required_chat", s.cfg.RequiredChat.Raw()).Msg("не удалось проверить членство")
		return outcome, s.emit(ctx, attempt.ChatID, lookupDiagnostic(s.cfg, outcome.Err))
	case domain.OutcomeBlocked:
		logger.Debug().Str("status", string(outcome.Status)).Msg("пользователь не вступил")
		return outcome, s.emit(ctx, attempt.ChatID, "")
	}

	logger.Debug().Str("status", string(outcome.Status)).Msg("проверка пройдена")
	if err := action(ctx); err != nil {
		return outcome, fmt.Errorf("закрытая команда: %w", err)
	}
	return outcome, nil
}

// Recheck обрабатывает кнопку повторной проверки. Закрытую команду не вызывает:
// при успехе пользователь получает просьбу отправить её снова.
func (s *Service) Recheck(ctx context.Context, req RecheckRequest) (domain.Outcome, error) {
	if err := s.messenger.AnswerCallback(ctx, req.CallbackID); err != nil {
		s.log.Error().Err(err).Str("callback_id", req.CallbackID).Msg("не удалось ответить на callback")
	}
	if req.ChatID == 0 {
		return domain.Outcome{}, nil
	}

	outcome := s.Check(ctx, req.UserID)
	metrics.ObserveGate("recheck", string(outcome.Kind))
	logger := s.log.With().Int64("user_id", req.UserID).Str("outcome", string(outcome.Kind)).Logger()

	switch outcome.Kind {
	case domain.OutcomeLookupFailed:
		logger.Warn().Err(outcome.Err).Msg("повторная проверка не удалась")
		return outcome, s.sendText(ctx, req.ChatID, recheckFailedText(outcome.Err))
	case domain.OutcomeBlocked:
		return outcome, s.emit(ctx, req.ChatID, "")
	}
	logger.Debug().Msg("вступление подтверждено")
	return outcome, s.sendText(ctx, req.ChatID, confirmedText(s.cfg))
}

// emit отправляет приглашение вступить; в тихом режиме ничего не делает.
func (s *Service) emit(ctx context.Context, chatID int64, diagnostic string) error {
	if s.cfg.Silent {
		return nil
	}
	if err := s.messenger.Send(ctx, chatID, BuildPrompt(s.cfg, diagnostic)); err != nil {
		return fmt.Errorf("отправка приглашения: %w", err)
	}
	return nil
}

func (s *Service) sendText(ctx context.Context, chatID int64, text string) error {
	if s.cfg.Silent {
		return nil
	}
	if err := s.messenger.Send(ctx, chatID, domain.Prompt{Text: text}); err != nil {
		return fmt.Errorf("отправка сообщения: %w", err)
	}
	return nil
}

package domain

import "context"

// MembershipOracle запрашивает статус пользователя в обязательном чате.
type MembershipOracle interface {
	CheckMembership(ctx context.Context, chat ChatRef, userID int64) (MembershipStatus, error)
}

// Messenger отправляет сообщения и отвечает на callback-запросы.
type Messenger interface {
	Send(ctx context.Context, chatID int64, prompt Prompt) error
	AnswerCallback(ctx context.Context, callbackID string) error
}

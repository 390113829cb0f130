package domain

import (
	"errors"
	"strconv"
	"strings"
)

// ErrEmptyChat возвращается, если идентификатор чата не задан.
var ErrEmptyChat = errors.New("идентификатор чата пуст")

// ChatRef описывает обязательный чат: числовой id или @username.
type ChatRef struct {
	raw      string
	id       int64
	username string
}

// ParseChatRef разбирает значение REQUIRED_CHAT.
func ParseChatRef(raw string) (ChatRef, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ChatRef{}, ErrEmptyChat
	}
	if isNumericID(trimmed) {
		id, err := strconv.ParseInt(trimmed, 10, 64)
		if err == nil {
			return ChatRef{raw: trimmed, id: id}, nil
		}
	}
	return ChatRef{raw: trimmed, username: trimmed}, nil
}

func isNumericID(s string) bool {
	digits := strings.TrimPrefix(s, "-")
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Raw возвращает значение в том виде, в каком оно задано в конфиге.
func (c ChatRef) Raw() string { return c.raw }

// IsNumeric сообщает, задан ли чат числовым id.
func (c ChatRef) IsNumeric() bool { return c.username == "" && c.raw != "" }

// ID возвращает числовой id чата (0 для @username).
func (c ChatRef) ID() int64 { return c.id }

// Username возвращает строковый идентификатор чата (пусто для числового id).
func (c ChatRef) Username() string { return c.username }

// IsZero сообщает, что чат не задан.
func (c ChatRef) IsZero() bool { return c.raw == "" }

func (c ChatRef) String() string { return c.raw }

// JoinURL строит ссылку t.me для публичного @username.
// Для числовых id ссылку вывести нельзя.
func (c ChatRef) JoinURL() string {
	if !strings.HasPrefix(c.username, "@") || len(c.username) < 2 {
		return ""
	}
	return "https://t.me/" + c.username[1:]
}

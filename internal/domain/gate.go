package domain

// RecheckAction — callback_data кнопки повторной проверки.
const RecheckAction = "recheck_join"

// DefaultCommand — команда, закрытая проверкой по умолчанию.
const DefaultCommand = "start"

// GateConfig — неизменяемые настройки проверки членства.
type GateConfig struct {
	RequiredChat ChatRef
	JoinURL      string
	Silent       bool
	Command      string
}

// JoinLink возвращает ссылку для кнопки вступления: сначала явный JOIN_URL,
// затем t.me/<username>. Пустая строка означает, что кнопки не будет.
func (c GateConfig) JoinLink() string {
	if c.JoinURL != "" {
		return c.JoinURL
	}
	return c.RequiredChat.JoinURL()
}

// GatedCommand возвращает имя закрытой команды без слэша.
func (c GateConfig) GatedCommand() string {
	if c.Command == "" {
		return DefaultCommand
	}
	return c.Command
}

// OutcomeKind — результат одной проверки.
type OutcomeKind string

const (
	OutcomePassed       OutcomeKind = "passed"
	OutcomeBlocked      OutcomeKind = "blocked"
	OutcomeLookupFailed OutcomeKind = "lookup_failed"
)

// Outcome описывает результат проверки для пользователя в конкретный момент.
// Не кэшируется: каждая попытка заново обращается к API.
type Outcome struct {
	Kind   OutcomeKind
	Status MembershipStatus
	Err    *LookupError
}

// Button — инлайн-кнопка сообщения. Задаётся либо URL, либо Data.
type Button struct {
	Text string
	URL  string
	Data string
}

// Prompt — исходящее сообщение обычным текстом с кнопками.
type Prompt struct {
	Text    string
	Buttons []Button
}

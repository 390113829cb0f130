package domain

import "strings"

// MembershipStatus — статус участника чата, который возвращает Bot API.
type MembershipStatus string

const (
	StatusMember        MembershipStatus = "member"
	StatusAdministrator MembershipStatus = "administrator"
	StatusOwner         MembershipStatus = "creator"
	StatusRestricted    MembershipStatus = "restricted"
	StatusLeft          MembershipStatus = "left"
	StatusKicked        MembershipStatus = "kicked"
	StatusUnknown       MembershipStatus = "unknown"
)

// ParseMembershipStatus приводит строку API к известному статусу.
// Незнакомые значения превращаются в StatusUnknown.
func ParseMembershipStatus(raw string) MembershipStatus {
	switch s := MembershipStatus(strings.ToLower(strings.TrimSpace(raw))); s {
	case StatusMember, StatusAdministrator, StatusOwner, StatusRestricted, StatusLeft, StatusKicked:
		return s
	case "owner":
		return StatusOwner
	case "banned":
		return StatusKicked
	default:
		return StatusUnknown
	}
}

// IsJoined сообщает, считается ли пользователь вступившим.
// Ограниченные (restricted) участники тоже проходят проверку.
func (s MembershipStatus) IsJoined() bool {
	switch s {
	case StatusMember, StatusAdministrator, StatusOwner, StatusRestricted:
		return true
	default:
		return false
	}
}

// LookupError описывает неудачный запрос членства.
type LookupError struct {
	Type    string
	Message string
	Err     error
}

func (e *LookupError) Error() string {
	return e.Type + ": " + e.Message
}

func (e *LookupError) Unwrap() error { return e.Err }

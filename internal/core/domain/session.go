package domain

import (
	"strings"
	"time"
)

// User is the profile returned by the backend on login. Fields the client
// does not know about are not kept.
type User struct {
	ID        string `json:"_id,omitempty"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Number    string `json:"number,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// DisplayName is safe on a nil user or a user without a name.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	return strings.TrimSpace(u.Name)
}

func (u *User) EmailAddress() string {
	if u == nil {
		return ""
	}
	return strings.TrimSpace(u.Email)
}

// RegistrationDate parses CreatedAt. A missing or unparseable value falls
// back to now so the calendar always reaches the current month.
func (u *User) RegistrationDate(now time.Time) time.Time {
	if u == nil {
		return now
	}
	t := ParseDate(u.CreatedAt)
	if t.IsZero() {
		return now
	}
	return t.In(now.Location())
}

type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

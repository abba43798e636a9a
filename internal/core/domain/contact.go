package domain

import (
	"errors"
	"strings"
)

var ErrContactMessageEmpty = errors.New("message cannot be empty")

type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// NewContactForm pre-fills the form from the signed-in user. A nil user or a
// user without a name leaves the fields empty.
func NewContactForm(u *User) ContactMessage {
	return ContactMessage{
		Name:  u.DisplayName(),
		Email: u.EmailAddress(),
	}
}

func (m ContactMessage) Validate() error {
	if strings.TrimSpace(m.Message) == "" {
		return ErrContactMessageEmpty
	}
	if strings.TrimSpace(m.Email) != "" {
		return validateEmail(m.Email)
	}
	return nil
}

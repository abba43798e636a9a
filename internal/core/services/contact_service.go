package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/niyam-buddy/internal/core/domain"
	"github.com/comitanigiacomo/niyam-buddy/internal/core/session"
)

type ContactService struct {
	backend domain.ContactBackend
	logger  *logrus.Entry
}

func NewContactService(backend domain.ContactBackend, logger *logrus.Entry) *ContactService {
	return &ContactService{
		backend: backend,
		logger:  componentLogger(logger, "contact"),
	}
}

// Form returns the contact form pre-filled from the signed-in user.
func (s *ContactService) Form(store *session.Store) domain.ContactMessage {
	var user *domain.User
	if sess := store.Current(); sess != nil {
		user = sess.User
	}
	return domain.NewContactForm(user)
}

// Submit fills blank name and email from the session before sending.
func (s *ContactService) Submit(ctx context.Context, store *session.Store, msg domain.ContactMessage) error {
	token, err := requireToken(store)
	if err != nil {
		return err
	}

	defaults := s.Form(store)
	if strings.TrimSpace(msg.Name) == "" {
		msg.Name = defaults.Name
	}
	if strings.TrimSpace(msg.Email) == "" {
		msg.Email = defaults.Email
	}
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Message = strings.TrimSpace(msg.Message)

	if err := msg.Validate(); err != nil {
		return err
	}

	if err := s.backend.SubmitContact(ctx, token, msg); err != nil {
		return domain.Fail("contact service: submit", "Failed to send message", err)
	}
	s.logger.Info("contact message sent")
	return nil
}

package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/niyam-buddy/internal/core/domain"
	"github.com/comitanigiacomo/niyam-buddy/internal/core/session"
)

type AuthService struct {
	backend domain.AuthBackend
	logger  *logrus.Entry
}

func NewAuthService(backend domain.AuthBackend, logger *logrus.Entry) *AuthService {
	return &AuthService{
		backend: backend,
		logger:  componentLogger(logger, "auth"),
	}
}

// Login validates the credentials, asks the backend for a token and stores
// the resulting session. A 401 from the backend means wrong credentials here,
// not an expired session.
func (s *AuthService) Login(ctx context.Context, store *session.Store, creds domain.Credentials) (*domain.Session, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	sess, err := s.backend.Login(ctx, creds)
	if errors.Is(err, domain.ErrSessionExpired) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, domain.Fail("auth service: login", "Login failed. Please try again.", err)
	}

	if err := store.Login(ctx, *sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// SendRegistrationOTP starts a registration. Calling it again resends a
// fresh code.
func (s *AuthService) SendRegistrationOTP(ctx context.Context, reg domain.Registration) error {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = strings.TrimSpace(reg.Email)
	reg.Number = strings.TrimSpace(reg.Number)
	if err := reg.Validate(); err != nil {
		return err
	}

	err := s.backend.SendRegistrationOTP(ctx, reg)
	if err != nil {
		return domain.Fail("auth service: send registration otp", "Failed to send OTP", err)
	}
	s.logger.WithField("email", reg.Email).Info("registration otp sent")
	return nil
}

// VerifyRegistration completes the sign up. When the backend hands back a
// token the user is signed in straight away; otherwise the returned session
// is nil and the user has to log in.
func (s *AuthService) VerifyRegistration(ctx context.Context, store *session.Store, v domain.RegistrationVerification) (*domain.Session, error) {
	v.Email = strings.TrimSpace(v.Email)
	v.OTP = domain.SanitizeOTP(v.OTP)
	if err := v.Validate(); err != nil {
		return nil, err
	}

	sess, err := s.backend.VerifyRegistrationOTP(ctx, v)
	if err != nil {
		return nil, domain.Fail("auth service: verify registration", "OTP verification failed", err)
	}
	if !sess.Authenticated() {
		return nil, nil
	}

	if err := store.Login(ctx, *sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *AuthService) SendPasswordResetOTP(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.ErrEmailRequired
	}

	if err := s.backend.SendPasswordResetOTP(ctx, email); err != nil {
		return domain.Fail("auth service: send reset otp", "Failed to send OTP", err)
	}
	s.logger.WithField("email", email).Info("password reset otp sent")
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, reset domain.PasswordReset) error {
	reset.Email = strings.TrimSpace(reset.Email)
	reset.OTP = domain.SanitizeOTP(reset.OTP)
	if err := reset.Validate(); err != nil {
		return err
	}

	if err := s.backend.VerifyPasswordResetOTP(ctx, reset); err != nil {
		return domain.Fail("auth service: reset password", "Failed to reset password", err)
	}
	return nil
}

func (s *AuthService) Logout(ctx context.Context, store *session.Store) error {
	return store.Logout(ctx)
}

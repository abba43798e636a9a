package upstream

import (
	"context"
	"errors"
	"net/http"

	"github.com/comitanigiacomo/niyam-buddy/internal/core/domain"
)

var _ domain.AuthBackend = (*Client)(nil)

var errMissingToken = errors.New("upstream: login response has no token")

type sessionResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (c *Client) Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	var resp sessionResponse
	if err := c.do(ctx, http.MethodPost, "/api/user/login", "", creds, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, errMissingToken
	}
	return &domain.Session{Token: resp.Token, User: resp.User}, nil
}

func (c *Client) SendRegistrationOTP(ctx context.Context, reg domain.Registration) error {
	return c.do(ctx, http.MethodPost, "/api/user/auth/send-otp", "", reg, nil)
}

func (c *Client) VerifyRegistrationOTP(ctx context.Context, v domain.RegistrationVerification) (*domain.Session, error) {
	var resp sessionResponse
	if err := c.do(ctx, http.MethodPost, "/api/user/auth/verify-otp", "", v, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, nil
	}
	return &domain.Session{Token: resp.Token, User: resp.User}, nil
}

func (c *Client) SendPasswordResetOTP(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/api/user/auth/sendforgetopt", "", body, nil)
}

func (c *Client) VerifyPasswordResetOTP(ctx context.Context, reset domain.PasswordReset) error {
	return c.do(ctx, http.MethodPost, "/api/user/auth/verifyforgetopt", "", reset, nil)
}

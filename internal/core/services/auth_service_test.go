package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/niyam-buddy/internal/adapters/upstream"
	"github.com/comitanigiacomo/niyam-buddy/internal/core/domain"
	"github.com/comitanigiacomo/niyam-buddy/internal/core/session"
)

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	t.Run("Success: Should persist token and user", func(t *testing.T) {
		backend := new(MockAuthBackend)
		service := NewAuthService(backend, quietLogger())
		store := newStore()
		ctx := context.Background()

		creds := domain.Credentials{Email: "asha@example.com", Password: "secret1"}
		user := &domain.User{ID: "u1", Name: "Asha", Email: creds.Email}
		backend.On("Login", ctx, creds).Return(&domain.Session{Token: "jwt-abc", User: user}, nil)

		sess, err := service.Login(ctx, store, domain.Credentials{Email: "  asha@example.com ", Password: "secret1"})

		require.NoError(t, err)
		assert.Equal(t, "jwt-abc", sess.Token)
		assert.Equal(t, "jwt-abc", store.Current().Token)

		token, err := store.Storage().Get(ctx, session.TokenKey)
		require.NoError(t, err)
		assert.Equal(t, "jwt-abc", token)

		backend.AssertExpectations(t)
	})

	t.Run("Fail: Should map a 401 to invalid credentials", func(t *testing.T) {
		backend := new(MockAuthBackend)
		service := NewAuthService(backend, quietLogger())
		store := newStore()
		ctx := context.Background()

		backend.On("Login", ctx, mock.Anything).Return(nil, &upstream.APIError{Status: 401, Message: "Unauthorized"})

		sess, err := service.Login(ctx, store, domain.Credentials{Email: "asha@example.com", Password: "nope12"})

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.Nil(t, sess)
		assert.Nil(t, store.Current())
	})

	t.Run("Fail: Should surface the server message on other errors", func(t *testing.T) {
		backend := new(MockAuthBackend)
		service := NewAuthService(backend, quietLogger())
		ctx := context.Background()

		backend.On("Login", ctx, mock.Anything).Return(nil, &upstream.APIError{Status: 403, Message: "Account not verified"})

		_, err := service.Login(ctx, newStore(), domain.Credentials{Email: "asha@example.com", Password: "secret1"})

		assert.Error(t, err)
		assert.Equal(t, "Account not verified", domain.UserMessage(err))
	})

	t.Run("Fail: Should fall back to a generic message on transport errors", func(t *testing.T) {
		backend := new(MockAuthBackend)
		service := NewAuthService(backend, quietLogger())
		ctx := context.Background()

		backend.On("Login", ctx, mock.Anything).Return(nil, upstream.ErrTransport)

		_, err := service.Login(ctx, newStore(), domain.Credentials{Email: "asha@example.com", Password: "secret1"})

		assert.ErrorIs(t, err, upstream.ErrTransport)
		assert.Equal(t, "Login failed. Please try again.", domain.UserMessage(err))
	})

	t.Run("Fail: Should validate before calling the backend", func(t *testing.T) {
		backend := new(MockAuthBackend)
		service := NewAuthService(backend, quietLogger())

		_, err := service.Login(context.Background(), newStore(), domain.Credentials{Email: "not-an-email", Password: "secret1"})
		assert.ErrorIs(t, err, domain.ErrInvalidEmail)

		_, err = service.Login(context.Background(), newStore(), domain.Credentials{Email: "asha@example.com"})
		assert.ErrorIs(t, err, domain.ErrPasswordRequired)

		backend.AssertNotCalled(t, "Login")
	})
}

func TestAuthService_Registration(t *testing.T) {
	t.Parallel()

	valid := domain.Registration{Name: "Asha", Email: "asha@example.com", Password: "secret1", Number: "9876543210"}

	t.Run("Success: Should send the otp", func(t *testing.T) {
		backend := new(MockAuthBackend)
		service := NewAuthService(backend, quietLogger())
		ctx := context.Background()

		backend.On("SendRegistrationOTP", ctx, valid).Return(nil)

		assert.NoError(t, service.SendRegistrationOTP(ctx, valid))
		backend.AssertExpectations(t)
	})

	t.Run("Fail: Should reject a short phone number", func(t *testing.T) {
		backend := new(MockAuthBackend)
		service := NewAuthService(backend, quietLogger())

		reg := valid
		reg.Number = "12345"

		assert.ErrorIs(t, service.SendRegistrationOTP(context.Background(), reg), domain.ErrInvalidPhone)
		backend.AssertNotCalled(t, "SendRegistrationOTP")
	})

	t.Run("Success: Should sign in when verification returns a token", func(t *testing.T) {
		backend := new(MockAuthBackend)
		service := NewAuthService(backend, quietLogger())
		store := newStore()
		ctx := context.Background()

		v := domain.RegistrationVerification{Email: valid.Email, OTP: "123456"}
		backend.On("VerifyRegistrationOTP", ctx, v).Return(&domain.Session{Token: "fresh"}, nil)

		sess, err := service.VerifyRegistration(ctx, store, domain.RegistrationVerification{Email: valid.Email, OTP: "123-456"})

		require.NoError(t, err)
		assert.Equal(t, "fresh", sess.Token)
		assert.True(t, store.Current().Authenticated())
	})

	t.Run("Success: Should stay signed out when verification returns nothing", func(t *testing.T) {
		backend := new(MockAuthBackend)
		service := NewAuthService(backend, quietLogger())
		store := newStore()
		ctx := context.Background()

		backend.On("VerifyRegistrationOTP", ctx, mock.Anything).Return(nil, nil)

		sess, err := service.VerifyRegistration(ctx, store, domain.RegistrationVerification{Email: valid.Email, OTP: "123456"})

		assert.NoError(t, err)
		assert.Nil(t, sess)
		assert.Nil(t, store.Current())
	})

	t.Run("Fail: Should reject a short otp", func(t *testing.T) {
		backend := new(MockAuthBackend)
		service := NewAuthService(backend, quietLogger())

		_, err := service.VerifyRegistration(context.Background(), newStore(), domain.RegistrationVerification{Email: valid.Email, OTP: "12345"})

		assert.ErrorIs(t, err, domain.ErrInvalidOTP)
		backend.AssertNotCalled(t, "VerifyRegistrationOTP")
	})
}

func TestAuthService_PasswordReset(t *testing.T) {
	t.Parallel()

	t.Run("Fail: Should require an email", func(t *testing.T) {
		service := NewAuthService(new(MockAuthBackend), quietLogger())
		assert.ErrorIs(t, service.SendPasswordResetOTP(context.Background(), "  "), domain.ErrEmailRequired)
	})

	t.Run("Success: Should send the reset otp", func(t *testing.T) {
		backend := new(MockAuthBackend)
		service := NewAuthService(backend, quietLogger())
		ctx := context.Background()

		backend.On("SendPasswordResetOTP", ctx, "asha@example.com").Return(nil)

		assert.NoError(t, service.SendPasswordResetOTP(ctx, " asha@example.com"))
		backend.AssertExpectations(t)
	})

	t.Run("Fail: Should reject a short new password", func(t *testing.T) {
		backend := new(MockAuthBackend)
		service := NewAuthService(backend, quietLogger())

		err := service.ResetPassword(context.Background(), domain.PasswordReset{Email: "asha@example.com", OTP: "123456", NewPassword: "abc"})

		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
		backend.AssertNotCalled(t, "VerifyPasswordResetOTP")
	})

	t.Run("Fail: Should surface the backend message", func(t *testing.T) {
		backend := new(MockAuthBackend)
		service := NewAuthService(backend, quietLogger())
		ctx := context.Background()

		reset := domain.PasswordReset{Email: "asha@example.com", OTP: "123456", NewPassword: "newpass"}
		backend.On("VerifyPasswordResetOTP", ctx, reset).Return(&upstream.APIError{Status: 400, Message: "OTP expired"})

		err := service.ResetPassword(ctx, reset)

		assert.Equal(t, "OTP expired", domain.UserMessage(err))
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	store := newSignedInStore(t, &domain.User{Name: "Asha"})
	require.NoError(t, store.Storage().Set(ctx, DraftKey, `{"editing":true}`))

	service := NewAuthService(new(MockAuthBackend), quietLogger())
	require.NoError(t, service.Logout(ctx, store))

	assert.Nil(t, store.Current())
	_, err := store.Storage().Get(ctx, DraftKey)
	assert.ErrorIs(t, err, session.ErrKeyNotFound)
}

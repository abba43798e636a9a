package services

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/niyam-buddy/internal/adapters/storage"
	"github.com/comitanigiacomo/niyam-buddy/internal/core/domain"
	"github.com/comitanigiacomo/niyam-buddy/internal/core/session"
)

type MockAuthBackend struct {
	mock.Mock
}

func (m *MockAuthBackend) Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockAuthBackend) SendRegistrationOTP(ctx context.Context, reg domain.Registration) error {
	return m.Called(ctx, reg).Error(0)
}

func (m *MockAuthBackend) VerifyRegistrationOTP(ctx context.Context, v domain.RegistrationVerification) (*domain.Session, error) {
	args := m.Called(ctx, v)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockAuthBackend) SendPasswordResetOTP(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockAuthBackend) VerifyPasswordResetOTP(ctx context.Context, reset domain.PasswordReset) error {
	return m.Called(ctx, reset).Error(0)
}

type MockLogBackend struct {
	mock.Mock
}

func (m *MockLogBackend) ListLogs(ctx context.Context, token string) ([]domain.LogRecord, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LogRecord), args.Error(1)
}

func (m *MockLogBackend) AddLog(ctx context.Context, token string, hours float64, message string) error {
	return m.Called(ctx, token, hours, message).Error(0)
}

type MockGoalBackend struct {
	mock.Mock
}

func (m *MockGoalBackend) ListGoals(ctx context.Context, token string) ([]domain.Goal, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Goal), args.Error(1)
}

func (m *MockGoalBackend) CreateGoal(ctx context.Context, token string, goal *domain.Goal) (*domain.Goal, error) {
	args := m.Called(ctx, token, goal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}

func (m *MockGoalBackend) UpdateGoal(ctx context.Context, token, id string, update domain.GoalUpdate) error {
	return m.Called(ctx, token, id, update).Error(0)
}

func (m *MockGoalBackend) DeleteGoal(ctx context.Context, token, id string) error {
	return m.Called(ctx, token, id).Error(0)
}

type MockRoutineBackend struct {
	mock.Mock
}

func (m *MockRoutineBackend) GetRoutine(ctx context.Context, token string) (domain.Routine, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Routine), args.Error(1)
}

func (m *MockRoutineBackend) SaveRoutine(ctx context.Context, token string, routine domain.Routine) error {
	return m.Called(ctx, token, routine).Error(0)
}

type MockContactBackend struct {
	mock.Mock
}

func (m *MockContactBackend) SubmitContact(ctx context.Context, token string, msg domain.ContactMessage) error {
	return m.Called(ctx, token, msg).Error(0)
}

func quietLogger() *logrus.Entry {
	logger, _ := test.NewNullLogger()
	return logrus.NewEntry(logger)
}

func newStore() *session.Store {
	return session.NewStore(storage.NewMemoryStorage(), quietLogger())
}

func newSignedInStore(t *testing.T, user *domain.User) *session.Store {
	t.Helper()
	store := newStore()
	require.NoError(t, store.Login(context.Background(), domain.Session{Token: "tok-123", User: user}))
	return store
}

package domain

import "context"

// AuthBackend covers the unauthenticated account endpoints.
type AuthBackend interface {
	// Login exchanges credentials for a token and the user profile.
	Login(ctx context.Context, creds Credentials) (*Session, error)

	// SendRegistrationOTP asks the backend to email a registration code.
	// Calling it again resends a fresh code.
	SendRegistrationOTP(ctx context.Context, reg Registration) error

	// VerifyRegistrationOTP completes the registration. Some deployments
	// answer with a session, others with nothing; a nil session is not an error.
	VerifyRegistrationOTP(ctx context.Context, v RegistrationVerification) (*Session, error)

	SendPasswordResetOTP(ctx context.Context, email string) error
	VerifyPasswordResetOTP(ctx context.Context, reset PasswordReset) error
}

type LogBackend interface {
	ListLogs(ctx context.Context, token string) ([]LogRecord, error)
	AddLog(ctx context.Context, token string, hours float64, message string) error
}

type GoalBackend interface {
	ListGoals(ctx context.Context, token string) ([]Goal, error)
	CreateGoal(ctx context.Context, token string, goal *Goal) (*Goal, error)
	UpdateGoal(ctx context.Context, token, id string, update GoalUpdate) error
	DeleteGoal(ctx context.Context, token, id string) error
}

// RoutineBackend stores the weekly routine as a single document.
type RoutineBackend interface {
	GetRoutine(ctx context.Context, token string) (Routine, error)
	SaveRoutine(ctx context.Context, token string, routine Routine) error
}

type ContactBackend interface {
	SubmitContact(ctx context.Context, token string, msg ContactMessage) error
}

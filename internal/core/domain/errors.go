package domain

import "errors"

var (
	ErrUnauthenticated = errors.New("no active session, please sign in")
	ErrSessionExpired  = errors.New("session expired, please login again")
	ErrNotFound        = errors.New("resource not found")
)

const sessionExpiredMessage = "Session expired. Please login again."

// OpError is a failed backend operation together with the message shown
// when the backend did not explain the failure itself.
type OpError struct {
	Op       string
	Fallback string
	Err      error
}

func (e *OpError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// Fail wraps err into an OpError; a nil err stays nil.
func Fail(op, fallback string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Fallback: fallback, Err: err}
}

type serverMessager interface {
	ServerMessage() string
}

// UserMessage picks the text a person should read for err: the expired
// session notice, then the backend's own message, then the operation
// fallback, then the error itself.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrSessionExpired) {
		return sessionExpiredMessage
	}

	var sm serverMessager
	if errors.As(err, &sm) && sm.ServerMessage() != "" {
		return sm.ServerMessage()
	}

	var op *OpError
	if errors.As(err, &op) && op.Fallback != "" {
		return op.Fallback
	}
	return err.Error()
}

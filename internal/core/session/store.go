// Package session keeps the signed-in user's token and profile in a
// key-value storage, the way a browser keeps them in local storage.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/niyam-buddy/internal/core/domain"
)

const (
	TokenKey    = "token"
	UserKey     = "user"
	TimezoneKey = "timezone"
)

var (
	ErrKeyNotFound = errors.New("session: key not found")
	ErrEmptyToken  = errors.New("session: token cannot be empty")

	ErrInvalidTimezone = errors.New("unknown time zone, expected an IANA name such as Asia/Kolkata")
)

// Storage is a small key-value store scoped to one client.
type Storage interface {
	// Get returns ErrKeyNotFound when the key was never set or was cleared.
	Get(ctx context.Context, key string) (string, error)

	Set(ctx context.Context, key, value string) error

	// Delete is a no-op for a missing key.
	Delete(ctx context.Context, key string) error

	// Clear removes every key of the client, not only the session keys.
	Clear(ctx context.Context) error
}

type Store struct {
	storage Storage
	logger  *logrus.Entry
	current *domain.Session
}

func NewStore(storage Storage, logger *logrus.Entry) *Store {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Store{
		storage: storage,
		logger:  logger.WithField("component", "session"),
	}
}

func (s *Store) Storage() Storage {
	return s.storage
}

func (s *Store) Current() *domain.Session {
	return s.current
}

// Hydrate loads the persisted session. A user value that cannot be decoded
// wipes the storage and leaves the store signed out instead of failing.
func (s *Store) Hydrate(ctx context.Context) (*domain.Session, error) {
	s.current = nil

	token, err := s.storage.Get(ctx, TokenKey)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: read token: %w", err)
	}
	if token == "" {
		return nil, nil
	}

	sess := &domain.Session{Token: token}

	rawUser, err := s.storage.Get(ctx, UserKey)
	switch {
	case errors.Is(err, ErrKeyNotFound):
	case err != nil:
		return nil, fmt.Errorf("session: read user: %w", err)
	default:
		var user *domain.User
		if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
			s.logger.WithError(err).Warn("discarding malformed persisted session")
			if clearErr := s.storage.Clear(ctx); clearErr != nil {
				s.logger.WithError(clearErr).Error("failed to clear malformed session")
			}
			return nil, nil
		}
		sess.User = user
	}

	s.current = sess
	return sess, nil
}

func (s *Store) Login(ctx context.Context, sess domain.Session) error {
	if sess.Token == "" {
		return ErrEmptyToken
	}

	switched, err := s.switchesIdentity(ctx, sess)
	if err != nil {
		return err
	}
	if switched {
		// drafts and preferences of the previous user must not survive
		if err := s.storage.Clear(ctx); err != nil {
			return fmt.Errorf("session: clear previous user: %w", err)
		}
		s.logger.Info("previous session replaced")
	}

	if err := s.storage.Set(ctx, TokenKey, sess.Token); err != nil {
		return fmt.Errorf("session: persist token: %w", err)
	}

	if sess.User != nil {
		data, err := json.Marshal(sess.User)
		if err != nil {
			return fmt.Errorf("session: encode user: %w", err)
		}
		if err := s.storage.Set(ctx, UserKey, string(data)); err != nil {
			return fmt.Errorf("session: persist user: %w", err)
		}
	} else if err := s.storage.Delete(ctx, UserKey); err != nil {
		return fmt.Errorf("session: reset user: %w", err)
	}

	s.current = &sess
	s.logger.WithField("email", sess.User.EmailAddress()).Info("signed in")
	return nil
}

// switchesIdentity reports whether the persisted session belongs to someone
// else. A new token for the same user id keeps the stored values.
func (s *Store) switchesIdentity(ctx context.Context, next domain.Session) (bool, error) {
	prevToken, err := s.storage.Get(ctx, TokenKey)
	if errors.Is(err, ErrKeyNotFound) || (err == nil && prevToken == "") {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("session: read token: %w", err)
	}
	if prevToken == next.Token {
		return false, nil
	}

	rawUser, err := s.storage.Get(ctx, UserKey)
	if err != nil {
		return true, nil
	}
	var prev domain.User
	if err := json.Unmarshal([]byte(rawUser), &prev); err != nil {
		return true, nil
	}
	return prev.ID == "" || next.User == nil || prev.ID != next.User.ID, nil
}

// SetTimezone remembers the IANA zone the viewer counts days in. The value is
// only written when it changes.
func (s *Store) SetTimezone(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" || name == "Local" {
		return ErrInvalidTimezone
	}
	if _, err := time.LoadLocation(name); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimezone, name)
	}

	current, err := s.storage.Get(ctx, TimezoneKey)
	if err == nil && current == name {
		return nil
	}
	if err := s.storage.Set(ctx, TimezoneKey, name); err != nil {
		return fmt.Errorf("session: persist time zone: %w", err)
	}
	return nil
}

// Location is the viewer's remembered zone, nil when none was given.
func (s *Store) Location(ctx context.Context) *time.Location {
	name, err := s.storage.Get(ctx, TimezoneKey)
	if err != nil || name == "" {
		return nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		s.logger.WithError(err).WithField("timezone", name).Warn("ignoring stored time zone")
		return nil
	}
	return loc
}

// Logout clears the whole storage, routine drafts included.
func (s *Store) Logout(ctx context.Context) error {
	s.current = nil
	if err := s.storage.Clear(ctx); err != nil {
		return fmt.Errorf("session: clear: %w", err)
	}
	s.logger.Info("signed out")
	return nil
}

// Provider returns the storage of one client, identified by the
// server-side session id.
type Provider interface {
	ForSession(sessionID string) Storage
}

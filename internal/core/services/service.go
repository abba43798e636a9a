// Package services holds the screen-level use cases shared by the web
// server and the terminal client.
package services

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/niyam-buddy/internal/core/domain"
	"github.com/comitanigiacomo/niyam-buddy/internal/core/session"
)

type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

func componentLogger(logger *logrus.Entry, name string) *logrus.Entry {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return logger.WithField("component", name)
}

// requireToken returns the bearer token of the hydrated session.
func requireToken(store *session.Store) (string, error) {
	sess := store.Current()
	if !sess.Authenticated() {
		return "", domain.ErrUnauthenticated
	}
	return sess.Token, nil
}

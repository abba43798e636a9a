package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/niyam-buddy/internal/adapters/storage"
	"github.com/comitanigiacomo/niyam-buddy/internal/adapters/upstream"
	"github.com/comitanigiacomo/niyam-buddy/internal/config"
	"github.com/comitanigiacomo/niyam-buddy/internal/core/services"
	"github.com/comitanigiacomo/niyam-buddy/internal/core/session"
)

const KeyringService = "niyam-buddy"

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenStorage returns the session storage selected by the config.
func OpenStorage(cfg *config.CLI) (session.Storage, io.Closer, error) {
	switch cfg.Storage {
	case config.StorageKeyring:
		kr := storage.NewKeyringStorage(KeyringService)
		if !kr.Available() {
			return nil, nil, fmt.Errorf("%w, set `storage: sqlite` in the config", storage.ErrKeyringUnavailable)
		}
		return kr, nopCloser{}, nil
	case config.StorageMemory:
		return storage.NewMemoryStorage(), nopCloser{}, nil
	default:
		db, err := storage.OpenSQLiteStorage(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return db, db, nil
	}
}

// NewContext wires the services over one backend client and hydrates the
// stored session.
func NewContext(ctx context.Context, cfg *config.CLI, configPath string, st session.Storage, out io.Writer, logger *logrus.Entry) (*Context, error) {
	backend := upstream.NewClient(cfg.BackendURL, cfg.TimeoutDuration(), upstream.WithLogger(logger))

	store := session.NewStore(st, logger)
	if _, err := store.Hydrate(ctx); err != nil {
		return nil, err
	}

	return &Context{
		Ctx:        ctx,
		Config:     cfg,
		ConfigPath: configPath,
		Session:    store,
		Auth:       services.NewAuthService(backend, logger),
		Study:      services.NewStudyService(backend, nil, logger),
		Routine:    services.NewRoutineEditor(backend, logger),
		Goals:      services.NewGoalService(backend, nil, logger),
		Contact:    services.NewContactService(backend, logger),
		Prompt:     HuhPrompter{},
		Out:        out,
		Logger:     logger,
	}, nil
}

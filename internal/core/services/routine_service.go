package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/niyam-buddy/internal/core/domain"
	"github.com/comitanigiacomo/niyam-buddy/internal/core/session"
)

// DraftKey is the storage key holding the routine being viewed or edited.
const DraftKey = "routine_draft"

var ErrNotEditing = errors.New("routine is not in edit mode")

type RoutineState struct {
	Schedule domain.Routine `json:"schedule"`
	Editing  bool           `json:"editing"`
}

// RoutineEditor keeps the weekly routine of one client between requests.
// Edits stay local until Save sends the whole week to the backend.
type RoutineEditor struct {
	backend domain.RoutineBackend
	logger  *logrus.Entry
}

func NewRoutineEditor(backend domain.RoutineBackend, logger *logrus.Entry) *RoutineEditor {
	return &RoutineEditor{
		backend: backend,
		logger:  componentLogger(logger, "routine"),
	}
}

// Load fetches the routine and replaces any local state, leaving edit mode.
func (e *RoutineEditor) Load(ctx context.Context, store *session.Store) (*RoutineState, error) {
	token, err := requireToken(store)
	if err != nil {
		return nil, err
	}

	routine, err := e.backend.GetRoutine(ctx, token)
	if err != nil {
		return nil, domain.Fail("routine editor: load", "Failed to load routine", err)
	}

	state := &RoutineState{Schedule: routine.Normalize()}
	if err := e.persist(ctx, store, state); err != nil {
		return nil, err
	}
	return state, nil
}

// State returns the routine being edited. Outside edit mode the routine is
// fetched again so changes saved elsewhere show up.
func (e *RoutineEditor) State(ctx context.Context, store *session.Store) (*RoutineState, error) {
	if _, err := requireToken(store); err != nil {
		return nil, err
	}

	raw, err := store.Storage().Get(ctx, DraftKey)
	if errors.Is(err, session.ErrKeyNotFound) {
		return e.Load(ctx, store)
	}
	if err != nil {
		return nil, fmt.Errorf("routine editor: read draft: %w", err)
	}

	var state RoutineState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		e.logger.WithError(err).Warn("discarding unreadable routine draft")
		return e.Load(ctx, store)
	}
	if !state.Editing {
		return e.Load(ctx, store)
	}
	state.Schedule = state.Schedule.Normalize()
	return &state, nil
}

func (e *RoutineEditor) BeginEdit(ctx context.Context, store *session.Store) (*RoutineState, error) {
	state, err := e.State(ctx, store)
	if err != nil {
		return nil, err
	}
	if state.Editing {
		return state, nil
	}

	state.Editing = true
	if err := e.persist(ctx, store, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (e *RoutineEditor) AddEntry(ctx context.Context, store *session.Store, day, start, end, subject string) (*RoutineState, error) {
	return e.edit(ctx, store, func(r domain.Routine) error {
		return r.AddEntry(day, start, end, subject)
	})
}

func (e *RoutineEditor) DeleteEntry(ctx context.Context, store *session.Store, day string, index int) (*RoutineState, error) {
	return e.edit(ctx, store, func(r domain.Routine) error {
		return r.DeleteEntry(day, index)
	})
}

// Save sends the whole week. On failure the local edits are kept and the
// editor stays in edit mode.
func (e *RoutineEditor) Save(ctx context.Context, store *session.Store) (*RoutineState, error) {
	state, err := e.State(ctx, store)
	if err != nil {
		return nil, err
	}
	if !state.Editing {
		return nil, ErrNotEditing
	}

	token, err := requireToken(store)
	if err != nil {
		return nil, err
	}

	if err := e.backend.SaveRoutine(ctx, token, state.Schedule); err != nil {
		return nil, domain.Fail("routine editor: save", "Failed to save routine", err)
	}

	state.Editing = false
	if err := e.persist(ctx, store, state); err != nil {
		return nil, err
	}
	e.logger.Info("routine saved")
	return state, nil
}

// CancelEdit throws away local edits by fetching the routine again.
func (e *RoutineEditor) CancelEdit(ctx context.Context, store *session.Store) (*RoutineState, error) {
	return e.Load(ctx, store)
}

func (e *RoutineEditor) edit(ctx context.Context, store *session.Store, change func(domain.Routine) error) (*RoutineState, error) {
	state, err := e.State(ctx, store)
	if err != nil {
		return nil, err
	}
	if !state.Editing {
		return nil, ErrNotEditing
	}

	next := state.Schedule.Clone()
	if err := change(next); err != nil {
		return nil, err
	}

	state.Schedule = next
	if err := e.persist(ctx, store, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (e *RoutineEditor) persist(ctx context.Context, store *session.Store, state *RoutineState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("routine editor: encode draft: %w", err)
	}
	if err := store.Storage().Set(ctx, DraftKey, string(data)); err != nil {
		return fmt.Errorf("routine editor: write draft: %w", err)
	}
	return nil
}

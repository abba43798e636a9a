package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/niyam-buddy/internal/core/domain"
	"github.com/comitanigiacomo/niyam-buddy/internal/core/session"
)

type GoalView struct {
	domain.Goal
	DaysRemaining int `json:"days_remaining"`
}

type GoalService struct {
	backend domain.GoalBackend
	clock   Clock
	logger  *logrus.Entry
}

func NewGoalService(backend domain.GoalBackend, clock Clock, logger *logrus.Entry) *GoalService {
	return &GoalService{
		backend: backend,
		clock:   clock,
		logger:  componentLogger(logger, "goals"),
	}
}

func (s *GoalService) List(ctx context.Context, store *session.Store) ([]GoalView, error) {
	token, err := requireToken(store)
	if err != nil {
		return nil, err
	}

	goals, err := s.backend.ListGoals(ctx, token)
	if err != nil {
		return nil, domain.Fail("goal service: list", "Failed to load goals", err)
	}

	now := s.clock.now()
	views := make([]GoalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, GoalView{Goal: g, DaysRemaining: g.DaysRemaining(now)})
	}
	return views, nil
}

// Create sends the new goal and returns the refreshed list.
func (s *GoalService) Create(ctx context.Context, store *session.Store, in domain.NewGoalInput) ([]GoalView, error) {
	token, err := requireToken(store)
	if err != nil {
		return nil, err
	}

	goal, err := domain.NewGoal(in)
	if err != nil {
		return nil, err
	}

	if _, err := s.backend.CreateGoal(ctx, token, goal); err != nil {
		return nil, domain.Fail("goal service: create", "Failed to create goal", err)
	}
	s.logger.WithField("title", goal.Title).Info("goal created")
	return s.List(ctx, store)
}

func (s *GoalService) Update(ctx context.Context, store *session.Store, id string, update domain.GoalUpdate) ([]GoalView, error) {
	token, err := requireToken(store)
	if err != nil {
		return nil, err
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrNotFound
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}

	if err := s.backend.UpdateGoal(ctx, token, id, update); err != nil {
		return nil, domain.Fail("goal service: update", "Failed to update goal", err)
	}
	return s.List(ctx, store)
}

func (s *GoalService) Delete(ctx context.Context, store *session.Store, id string) ([]GoalView, error) {
	token, err := requireToken(store)
	if err != nil {
		return nil, err
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrNotFound
	}

	if err := s.backend.DeleteGoal(ctx, token, id); err != nil {
		return nil, domain.Fail("goal service: delete", "Failed to delete goal", err)
	}
	s.logger.WithField("goal_id", id).Info("goal deleted")
	return s.List(ctx, store)
}

package domain

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"
)

var (
	ErrGoalTitleEmpty    = errors.New("goal title cannot be empty")
	ErrInvalidTargetDays = errors.New("target days must be a positive number")
	ErrInvalidProgress   = errors.New("progress must be between 0 and 100")
)

type Goal struct {
	ID          string    `json:"_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TargetDays  int       `json:"targetDays"`
	Completed   bool      `json:"completed"`
	Progress    int       `json:"progress"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
}

// UnmarshalJSON reads createdAt the way log dates are read: a missing or
// unparseable value leaves CreatedAt zero instead of failing the goal.
func (g *Goal) UnmarshalJSON(data []byte) error {
	type plain Goal
	var raw struct {
		plain
		AltID     string          `json:"id"`
		CreatedAt json.RawMessage `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*g = Goal(raw.plain)
	if g.ID == "" {
		g.ID = raw.AltID
	}
	g.CreatedAt = parseRawDate(raw.CreatedAt)
	return nil
}

type NewGoalInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	TargetDays  int    `json:"targetDays"`
}

// NewGoal builds the payload for a goal creation. New goals always start
// incomplete with no progress.
func NewGoal(in NewGoalInput) (*Goal, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrGoalTitleEmpty
	}
	if in.TargetDays <= 0 {
		return nil, ErrInvalidTargetDays
	}

	return &Goal{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		TargetDays:  in.TargetDays,
		Completed:   false,
		Progress:    0,
	}, nil
}

// GoalUpdate carries a partial update; nil fields are left untouched.
type GoalUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	TargetDays  *int    `json:"targetDays,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
	Progress    *int    `json:"progress,omitempty"`
}

func (u GoalUpdate) Validate() error {
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		return ErrGoalTitleEmpty
	}
	if u.TargetDays != nil && *u.TargetDays <= 0 {
		return ErrInvalidTargetDays
	}
	if u.Progress != nil && (*u.Progress < 0 || *u.Progress > 100) {
		return ErrInvalidProgress
	}
	return nil
}

// Apply merges the update into a copy of the goal, the same way the client
// refreshes its cached list after a successful PUT.
func (g Goal) Apply(u GoalUpdate) Goal {
	if u.Title != nil {
		g.Title = strings.TrimSpace(*u.Title)
	}
	if u.Description != nil {
		g.Description = strings.TrimSpace(*u.Description)
	}
	if u.TargetDays != nil {
		g.TargetDays = *u.TargetDays
	}
	if u.Completed != nil {
		g.Completed = *u.Completed
	}
	if u.Progress != nil {
		g.Progress = *u.Progress
	}
	return g
}

// DaysRemaining counts whole days, rounded up, until CreatedAt+TargetDays.
// Overdue goals report 0.
func (g Goal) DaysRemaining(now time.Time) int {
	if g.CreatedAt.IsZero() {
		return g.TargetDays
	}
	target := g.CreatedAt.AddDate(0, 0, g.TargetDays)
	days := int(math.Ceil(target.Sub(now).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

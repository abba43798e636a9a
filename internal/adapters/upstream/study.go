package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/comitanigiacomo/niyam-buddy/internal/core/domain"
)

var (
	_ domain.LogBackend     = (*Client)(nil)
	_ domain.GoalBackend    = (*Client)(nil)
	_ domain.RoutineBackend = (*Client)(nil)
	_ domain.ContactBackend = (*Client)(nil)
)

// ListLogs decodes records one by one so a single broken record is skipped
// instead of failing the whole list. A non-array data field means no logs.
func (c *Client) ListLogs(ctx context.Context, token string) ([]domain.LogRecord, error) {
	var resp struct {
		Data json.RawMessage `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/todaylog/all", token, nil, &resp); err != nil {
		return nil, err
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(resp.Data, &raws); err != nil {
		return []domain.LogRecord{}, nil
	}

	logs := make([]domain.LogRecord, 0, len(raws))
	for i, raw := range raws {
		var l domain.LogRecord
		if err := json.Unmarshal(raw, &l); err != nil {
			c.logger.WithError(err).WithField("index", i).Warn("skipping malformed log record")
			continue
		}
		logs = append(logs, l)
	}
	return logs, nil
}

func (c *Client) AddLog(ctx context.Context, token string, hours float64, message string) error {
	body := map[string]string{
		"time":    strconv.FormatFloat(hours, 'f', -1, 64),
		"message": message,
	}
	return c.do(ctx, http.MethodPost, "/api/todaylog/add", token, body, nil)
}

func (c *Client) ListGoals(ctx context.Context, token string) ([]domain.Goal, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/goal", token, nil, &raw); err != nil {
		return nil, err
	}

	goals := []domain.Goal{}
	if len(raw) == 0 {
		return goals, nil
	}
	if err := json.Unmarshal(raw, &goals); err == nil {
		if goals == nil {
			goals = []domain.Goal{}
		}
		return goals, nil
	}

	var wrapped struct {
		Data []domain.Goal `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("upstream: decode goals: %w", err)
	}
	if wrapped.Data == nil {
		return []domain.Goal{}, nil
	}
	return wrapped.Data, nil
}

// createGoalRequest is the creation body; ids and dates are the backend's.
type createGoalRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	TargetDays  int    `json:"targetDays"`
	Completed   bool   `json:"completed"`
	Progress    int    `json:"progress"`
}

func (c *Client) CreateGoal(ctx context.Context, token string, goal *domain.Goal) (*domain.Goal, error) {
	body := createGoalRequest{
		Title:       goal.Title,
		Description: goal.Description,
		TargetDays:  goal.TargetDays,
		Completed:   goal.Completed,
		Progress:    goal.Progress,
	}

	var created domain.Goal
	if err := c.do(ctx, http.MethodPost, "/api/goal", token, body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateGoal(ctx context.Context, token, id string, update domain.GoalUpdate) error {
	return c.do(ctx, http.MethodPut, "/api/goal/"+url.PathEscape(id), token, update, nil)
}

func (c *Client) DeleteGoal(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/goal/"+url.PathEscape(id), token, nil, nil)
}

// GetRoutine accepts both the bare weekday mapping and a {"schedule": ...}
// envelope. An empty or null body is an empty week.
func (c *Client) GetRoutine(ctx context.Context, token string) (domain.Routine, error) {
	var raw map[string]json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/routine", token, nil, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return domain.NewRoutine(), nil
	}

	if schedule, ok := raw["schedule"]; ok {
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(schedule, &inner); err == nil && inner != nil {
			raw = inner
		}
	}

	routine := domain.Routine{}
	for day, entriesRaw := range raw {
		if !domain.IsWeekday(day) {
			continue
		}
		var entries []domain.RoutineEntry
		if err := json.Unmarshal(entriesRaw, &entries); err != nil {
			return nil, fmt.Errorf("upstream: decode routine for %s: %w", day, err)
		}
		routine[day] = entries
	}
	return routine.Normalize(), nil
}

func (c *Client) SaveRoutine(ctx context.Context, token string, routine domain.Routine) error {
	body := map[string]domain.Routine{"schedule": routine.Normalize()}
	return c.do(ctx, http.MethodPost, "/api/save-routine", token, body, nil)
}

func (c *Client) SubmitContact(ctx context.Context, token string, msg domain.ContactMessage) error {
	return c.do(ctx, http.MethodPost, "/api/contact", token, msg, nil)
}

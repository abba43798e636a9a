package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/niyam-buddy/internal/core/domain"
	"github.com/comitanigiacomo/niyam-buddy/internal/core/session"
	"github.com/comitanigiacomo/niyam-buddy/internal/core/stats"
)

type DashboardView struct {
	User     *domain.User          `json:"user"`
	Stats    domain.DashboardStats `json:"stats"`
	Calendar domain.CalendarMonth  `json:"calendar"`
}

type TodayView struct {
	Week domain.WeekSummary `json:"week"`
}

// StudyService serves every screen built from the study logs. Logs are
// fetched per call and aggregated on the spot.
type StudyService struct {
	backend domain.LogBackend
	clock   Clock
	logger  *logrus.Entry
}

func NewStudyService(backend domain.LogBackend, clock Clock, logger *logrus.Entry) *StudyService {
	return &StudyService{
		backend: backend,
		clock:   clock,
		logger:  componentLogger(logger, "study"),
	}
}

func (s *StudyService) Logs(ctx context.Context, store *session.Store) ([]domain.LogRecord, error) {
	token, err := requireToken(store)
	if err != nil {
		return nil, err
	}

	logs, err := s.backend.ListLogs(ctx, token)
	if err != nil {
		return nil, domain.Fail("study service: list logs", "Failed to load study logs", err)
	}
	return logs, nil
}

func (s *StudyService) AddLog(ctx context.Context, store *session.Store, in domain.NewLogInput) error {
	token, err := requireToken(store)
	if err != nil {
		return err
	}

	hours, err := in.Validate()
	if err != nil {
		return err
	}

	if err := s.backend.AddLog(ctx, token, hours, strings.TrimSpace(in.Message)); err != nil {
		return domain.Fail("study service: add log", "Failed to add study log", err)
	}
	s.logger.WithField("hours", hours).Info("study log added")
	return nil
}

func (s *StudyService) Today(ctx context.Context, store *session.Store) (*TodayView, error) {
	logs, err := s.Logs(ctx, store)
	if err != nil {
		return nil, err
	}
	return &TodayView{Week: stats.CurrentWeek(logs, s.now(ctx, store))}, nil
}

func (s *StudyService) Dashboard(ctx context.Context, store *session.Store) (*DashboardView, error) {
	logs, err := s.Logs(ctx, store)
	if err != nil {
		return nil, err
	}

	now := s.now(ctx, store)
	user := store.Current().User
	return &DashboardView{
		User:     user,
		Stats:    stats.Summarize(logs, now),
		Calendar: stats.BuildCalendar(logs, now, user.RegistrationDate(now), now),
	}, nil
}

// Calendar renders the given "YYYY-MM" month; an empty month means the
// current one. Months outside the navigable range are clamped.
func (s *StudyService) Calendar(ctx context.Context, store *session.Store, month string) (*domain.CalendarMonth, error) {
	now := s.now(ctx, store)
	viewed, err := parseViewedMonth(month, now)
	if err != nil {
		return nil, err
	}

	logs, err := s.Logs(ctx, store)
	if err != nil {
		return nil, err
	}

	cal := stats.BuildCalendar(logs, viewed, store.Current().User.RegistrationDate(now), now)
	return &cal, nil
}

// JumpToYear keeps the month of the currently viewed page and moves to year.
func (s *StudyService) JumpToYear(ctx context.Context, store *session.Store, month string, year int) (*domain.CalendarMonth, error) {
	if _, err := requireToken(store); err != nil {
		return nil, err
	}

	now := s.now(ctx, store)
	viewed, err := parseViewedMonth(month, now)
	if err != nil {
		return nil, err
	}

	nav := stats.NewNavigator(store.Current().User.RegistrationDate(now), now)
	return s.Calendar(ctx, store, stats.FormatMonth(nav.JumpToYear(viewed, year)))
}

// now is the current time in the viewer's zone, so days start at the
// viewer's midnight.
func (s *StudyService) now(ctx context.Context, store *session.Store) time.Time {
	now := s.clock.now()
	if loc := store.Location(ctx); loc != nil {
		now = now.In(loc)
	}
	return now
}

var ErrInvalidMonth = errors.New("month must be formatted as YYYY-MM")

func parseViewedMonth(month string, now time.Time) (time.Time, error) {
	if strings.TrimSpace(month) == "" {
		return stats.MonthStart(now), nil
	}
	viewed, err := stats.ParseMonth(month, now.Location())
	if err != nil {
		return time.Time{}, ErrInvalidMonth
	}
	return viewed, nil
}

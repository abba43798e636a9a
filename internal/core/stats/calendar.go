package stats

import (
	"strings"
	"time"

	"github.com/comitanigiacomo/niyam-buddy/internal/core/domain"
)

const monthLayout = "2006-01"

var weekdayLabels = []string{"S", "M", "T", "W", "T", "F", "S"}

type dayGroup struct {
	hours    float64
	sessions int
	messages []string
}

func groupByDay(logs []domain.LogRecord, loc *time.Location) map[string]*dayGroup {
	groups := make(map[string]*dayGroup)
	for _, l := range logs {
		if !l.HasDate() {
			continue
		}
		key := dayKey(l.Date, loc)
		g, ok := groups[key]
		if !ok {
			g = &dayGroup{}
			groups[key] = g
		}
		g.hours += l.Hours
		g.sessions++
		if msg := strings.TrimSpace(l.Message); msg != "" {
			g.messages = append(g.messages, msg)
		}
	}
	return groups
}

// Classify maps a day's logged hours to a calendar tier. Any logged day is at
// least low tier, even with zero hours.
func Classify(hours float64, logged bool) domain.StudyTier {
	switch {
	case !logged:
		return domain.TierNoStudy
	case hours >= domain.HighTierHours:
		return domain.TierHigh
	case hours >= domain.MediumTierHours:
		return domain.TierMedium
	default:
		return domain.TierLow
	}
}

// Navigator bounds calendar navigation between the registration month and
// the current month.
type Navigator struct {
	first time.Time
	last  time.Time
}

func NewNavigator(registration, now time.Time) Navigator {
	first := MonthStart(registration.In(now.Location()))
	last := MonthStart(now)
	if first.After(last) {
		first = last
	}
	return Navigator{first: first, last: last}
}

func (n Navigator) First() time.Time { return n.first }
func (n Navigator) Last() time.Time  { return n.last }

func (n Navigator) Clamp(month time.Time) time.Time {
	m := MonthStart(month.In(n.last.Location()))
	if m.Before(n.first) {
		return n.first
	}
	if m.After(n.last) {
		return n.last
	}
	return m
}

func (n Navigator) CanPrev(month time.Time) bool {
	return n.Clamp(month).After(n.first)
}

func (n Navigator) CanNext(month time.Time) bool {
	return n.Clamp(month).Before(n.last)
}

func (n Navigator) Prev(month time.Time) (time.Time, bool) {
	m := n.Clamp(month)
	if !n.CanPrev(m) {
		return m, false
	}
	return m.AddDate(0, -1, 0), true
}

func (n Navigator) Next(month time.Time) (time.Time, bool) {
	m := n.Clamp(month)
	if !n.CanNext(m) {
		return m, false
	}
	return m.AddDate(0, 1, 0), true
}

// JumpToYear keeps the viewed month and moves to the given year, staying
// inside the navigable range.
func (n Navigator) JumpToYear(month time.Time, year int) time.Time {
	m := n.Clamp(month)
	return n.Clamp(time.Date(year, m.Month(), 1, 0, 0, 0, 0, m.Location()))
}

// BuildCalendar renders the month grid for viewed. The grid is padded to
// whole Sunday-first weeks; padding days are flagged OutsideMonth and never
// classified as no-study.
func BuildCalendar(logs []domain.LogRecord, viewed, registration, now time.Time) domain.CalendarMonth {
	loc := now.Location()
	nav := NewNavigator(registration, now)
	month := nav.Clamp(viewed)

	groups := groupByDay(logs, loc)
	todayKey := startOfDay(now).Format(dayLayout)

	first := month
	last := month.AddDate(0, 1, -1)
	gridStart := first.AddDate(0, 0, -int(first.Weekday()))
	gridEnd := last.AddDate(0, 0, 6-int(last.Weekday()))

	cal := domain.CalendarMonth{
		Year:             month.Year(),
		Month:            int(month.Month()),
		Title:            month.Format("January 2006"),
		WeekdayLabels:    append([]string{}, weekdayLabels...),
		CanPrev:          nav.CanPrev(month),
		CanNext:          nav.CanNext(month),
		RegisteredSince:  nav.First().Format("Jan 2006"),
		RegistrationYear: nav.First().Year(),
		CurrentYear:      now.Year(),
	}
	if prev, ok := nav.Prev(month); ok {
		cal.PrevMonth = prev.Format(monthLayout)
	}
	if next, ok := nav.Next(month); ok {
		cal.NextMonth = next.Format(monthLayout)
	}

	var week []domain.CalendarDay
	for d := gridStart; !d.After(gridEnd); d = d.AddDate(0, 0, 1) {
		key := d.Format(dayLayout)
		cell := domain.CalendarDay{
			Date:         key,
			Day:          d.Day(),
			Today:        key == todayKey,
			OutsideMonth: d.Month() != month.Month(),
		}

		g, logged := groups[key]
		if logged {
			cell.Hours = g.hours
			cell.Sessions = g.sessions
			cell.Messages = g.messages
		}
		if logged || !cell.OutsideMonth {
			cell.Tier = Classify(cell.Hours, logged)
		}

		week = append(week, cell)
		if len(week) == 7 {
			cal.Weeks = append(cal.Weeks, week)
			week = nil
		}
	}

	return cal
}

func MonthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// ParseMonth reads a YYYY-MM value in loc.
func ParseMonth(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(monthLayout, strings.TrimSpace(s), loc)
}

func FormatMonth(t time.Time) string {
	return t.Format(monthLayout)
}

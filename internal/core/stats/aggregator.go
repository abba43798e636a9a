// Package stats derives the dashboard numbers, the weekly view and the
// calendar grid from the study logs fetched from the backend. Everything here
// is a pure function of the logs and a reference time; calendar days are
// taken in the location of that reference time.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/comitanigiacomo/niyam-buddy/internal/core/domain"
)

const (
	dayLayout     = "2006-01-02"
	recentLogsMax = 5
)

func TotalHours(logs []domain.LogRecord) float64 {
	total := 0.0
	for _, l := range logs {
		total += l.Hours
	}
	return total
}

// WeekStart returns Monday 00:00 of the week containing now.
func WeekStart(now time.Time) time.Time {
	offset := int(now.Weekday()) - int(time.Monday)
	if now.Weekday() == time.Sunday {
		offset = 6
	}
	return startOfDay(now).AddDate(0, 0, -offset)
}

// WeeklyLogs keeps the records dated between the start of the current week
// and now, both ends included.
func WeeklyLogs(logs []domain.LogRecord, now time.Time) []domain.LogRecord {
	start := WeekStart(now)

	weekly := make([]domain.LogRecord, 0, len(logs))
	for _, l := range logs {
		if !l.HasDate() {
			continue
		}
		if l.Date.Before(start) || l.Date.After(now) {
			continue
		}
		weekly = append(weekly, l)
	}
	return weekly
}

// WeeklyAverage is the mean duration of this week's sessions, not a per-day
// average.
func WeeklyAverage(logs []domain.LogRecord, now time.Time) float64 {
	weekly := WeeklyLogs(logs, now)
	if len(weekly) == 0 {
		return 0
	}
	return round1(TotalHours(weekly) / float64(len(weekly)))
}

func MonthlyHours(logs []domain.LogRecord, now time.Time) float64 {
	since := now.AddDate(0, -1, 0)

	total := 0.0
	for _, l := range logs {
		if l.HasDate() && !l.Date.Before(since) {
			total += l.Hours
		}
	}
	return total
}

// Streak counts consecutive calendar days with a log, ending today. If the
// most recent log is not from today there is no streak.
func Streak(logs []domain.LogRecord, now time.Time) int {
	dated := sortedByDateDesc(logs)
	if len(dated) == 0 {
		return 0
	}

	loc := now.Location()
	cursor := startOfDay(now)
	if dayKey(dated[0].Date, loc) != cursor.Format(dayLayout) {
		return 0
	}

	streak := 0
	lastCounted := ""
	for _, l := range dated {
		key := dayKey(l.Date, loc)
		if key == lastCounted {
			continue
		}
		if key != cursor.Format(dayLayout) {
			break
		}
		streak++
		lastCounted = key
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

// WeeklyHoursByWeekday returns seven buckets, oldest first, for today and
// the six days before it.
func WeeklyHoursByWeekday(logs []domain.LogRecord, now time.Time) []domain.WeekdayHours {
	byDay := hoursByDay(logs, now.Location())
	today := startOfDay(now)

	buckets := make([]domain.WeekdayHours, 0, 7)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		key := day.Format(dayLayout)
		buckets = append(buckets, domain.WeekdayHours{
			Day:   int(day.Weekday()) + 1,
			Date:  key,
			Hours: byDay[key],
		})
	}
	return buckets
}

// RecentLogs returns up to n records, most recent first. Undated records
// come last in their original order.
func RecentLogs(logs []domain.LogRecord, n int) []domain.LogRecord {
	ordered := make([]domain.LogRecord, len(logs))
	copy(ordered, logs)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.HasDate() != b.HasDate() {
			return a.HasDate()
		}
		return a.Date.After(b.Date)
	})

	if len(ordered) > n {
		ordered = ordered[:n]
	}
	return ordered
}

func Summarize(logs []domain.LogRecord, now time.Time) domain.DashboardStats {
	return domain.DashboardStats{
		TotalHours:    TotalHours(logs),
		WeeklyAverage: WeeklyAverage(logs, now),
		Streak:        Streak(logs, now),
		MonthlyHours:  MonthlyHours(logs, now),
		WeeklyHours:   WeeklyHoursByWeekday(logs, now),
		RecentLogs:    RecentLogs(logs, recentLogsMax),
	}
}

func sortedByDateDesc(logs []domain.LogRecord) []domain.LogRecord {
	dated := make([]domain.LogRecord, 0, len(logs))
	for _, l := range logs {
		if l.HasDate() {
			dated = append(dated, l)
		}
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].Date.After(dated[j].Date)
	})
	return dated
}

func hoursByDay(logs []domain.LogRecord, loc *time.Location) map[string]float64 {
	byDay := make(map[string]float64)
	for _, l := range logs {
		if !l.HasDate() {
			continue
		}
		byDay[dayKey(l.Date, loc)] += l.Hours
	}
	return byDay
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dayLayout)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

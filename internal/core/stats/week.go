package stats

import (
	"math"
	"time"

	"github.com/comitanigiacomo/niyam-buddy/internal/core/domain"
)

// CurrentWeek lays out the days from Monday to today. Several logs on the
// same day are merged into one row.
func CurrentWeek(logs []domain.LogRecord, now time.Time) domain.WeekSummary {
	loc := now.Location()
	start := WeekStart(now)
	today := startOfDay(now)
	groups := groupByDay(WeeklyLogs(logs, now), loc)

	summary := domain.WeekSummary{
		StartDate: start.Format(dayLayout),
		EndDate:   today.Format(dayLayout),
		Days:      make([]domain.WeekDay, 0, 7),
	}

	elapsed := 0
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		elapsed++
		key := d.Format(dayLayout)

		row := domain.WeekDay{
			Date:    key,
			Weekday: d.Weekday().String()[:3],
			Day:     d.Day(),
			IsToday: key == today.Format(dayLayout),
		}
		if g, ok := groups[key]; ok {
			row.Logged = true
			row.Hours = g.hours
			row.Messages = g.messages
			summary.DaysCompleted++
			summary.TotalHours += g.hours
		}
		summary.Days = append(summary.Days, row)
	}

	if elapsed > 0 {
		summary.AverageDailyHours = round1(summary.TotalHours / float64(elapsed))
		summary.CompletionRate = int(math.Round(float64(summary.DaysCompleted) / float64(elapsed) * 100))
	}

	return summary
}

package stats_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/niyam-buddy/internal/core/domain"
	"github.com/comitanigiacomo/niyam-buddy/internal/core/stats"
)

var registered = time.Date(2024, time.January, 2, 9, 0, 0, 0, time.UTC)

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func findDay(t *testing.T, cal domain.CalendarMonth, date string) domain.CalendarDay {
	t.Helper()
	for _, week := range cal.Weeks {
		for _, d := range week {
			if d.Date == date {
				return d
			}
		}
	}
	t.Fatalf("day %s not in grid", date)
	return domain.CalendarDay{}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		hours  float64
		logged bool
		want   domain.StudyTier
	}{
		{"Not logged", 0, false, domain.TierNoStudy},
		{"Logged zero hours", 0, true, domain.TierLow},
		{"Just under medium", 1.9, true, domain.TierLow},
		{"Medium boundary", 2, true, domain.TierMedium},
		{"High boundary", 4, true, domain.TierHigh},
		{"Long day", 9, true, domain.TierHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stats.Classify(tt.hours, tt.logged))
		})
	}
}

func TestNavigator(t *testing.T) {
	nav := stats.NewNavigator(registered, now)

	t.Run("Bounds are registration month and current month", func(t *testing.T) {
		assert.Equal(t, month(2024, time.January), nav.First())
		assert.Equal(t, month(2024, time.March), nav.Last())
	})

	t.Run("Never moves before registration", func(t *testing.T) {
		m, ok := nav.Prev(month(2024, time.January))
		assert.False(t, ok)
		assert.Equal(t, month(2024, time.January), m)
		assert.Equal(t, month(2024, time.January), nav.Clamp(month(2023, time.June)))
	})

	t.Run("Never moves past the current month", func(t *testing.T) {
		m, ok := nav.Next(month(2024, time.March))
		assert.False(t, ok)
		assert.Equal(t, month(2024, time.March), m)
		assert.Equal(t, month(2024, time.March), nav.Clamp(month(2030, time.January)))
	})

	t.Run("Walks inside the range", func(t *testing.T) {
		m, ok := nav.Next(month(2024, time.January))
		assert.True(t, ok)
		assert.Equal(t, month(2024, time.February), m)
	})

	t.Run("Jump to year is clamped", func(t *testing.T) {
		assert.Equal(t, month(2024, time.January), nav.JumpToYear(month(2024, time.March), 2022))
		assert.Equal(t, month(2024, time.February), nav.JumpToYear(month(2024, time.February), 2024))
	})

	t.Run("Registration in the future collapses to now", func(t *testing.T) {
		future := stats.NewNavigator(now.AddDate(1, 0, 0), now)
		assert.Equal(t, future.Last(), future.First())
	})
}

func TestBuildCalendar(t *testing.T) {
	t.Run("Scenario: Empty logs mark every day of the month as no-study", func(t *testing.T) {
		cal := stats.BuildCalendar(nil, month(2024, time.March), registered, now)

		assert.Equal(t, "March 2024", cal.Title)
		assert.Equal(t, []string{"S", "M", "T", "W", "T", "F", "S"}, cal.WeekdayLabels)
		require.Len(t, cal.Weeks, 6)

		inMonth := 0
		for _, week := range cal.Weeks {
			require.Len(t, week, 7)
			for _, d := range week {
				if d.OutsideMonth {
					assert.Equal(t, domain.TierNone, d.Tier)
					continue
				}
				inMonth++
				assert.Equal(t, domain.TierNoStudy, d.Tier)
			}
		}
		assert.Equal(t, 31, inMonth)

		assert.Equal(t, "2024-02-25", cal.Weeks[0][0].Date)
		assert.True(t, findDay(t, cal, "2024-03-13").Today)
	})

	t.Run("Same-day logs are summed", func(t *testing.T) {
		logs := []domain.LogRecord{
			{Date: time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC), Hours: 1.5, Message: "Maths"},
			{Date: time.Date(2024, 3, 5, 20, 0, 0, 0, time.UTC), Hours: 2.5, Message: "Physics"},
		}

		day := findDay(t, stats.BuildCalendar(logs, month(2024, time.March), registered, now), "2024-03-05")

		assert.Equal(t, 4.0, day.Hours)
		assert.Equal(t, 2, day.Sessions)
		assert.Equal(t, []string{"Maths", "Physics"}, day.Messages)
		assert.Equal(t, domain.TierHigh, day.Tier)
	})

	t.Run("Padding days are classified only when logged", func(t *testing.T) {
		logs := []domain.LogRecord{{Date: time.Date(2024, 2, 29, 9, 0, 0, 0, time.UTC), Hours: 2}}

		cal := stats.BuildCalendar(logs, month(2024, time.March), registered, now)

		padded := findDay(t, cal, "2024-02-29")
		assert.True(t, padded.OutsideMonth)
		assert.Equal(t, domain.TierMedium, padded.Tier)
		assert.Equal(t, domain.TierNone, findDay(t, cal, "2024-02-28").Tier)
	})

	t.Run("Navigation links follow the bounds", func(t *testing.T) {
		cal := stats.BuildCalendar(nil, month(2024, time.March), registered, now)
		assert.True(t, cal.CanPrev)
		assert.False(t, cal.CanNext)
		assert.Equal(t, "2024-02", cal.PrevMonth)
		assert.Empty(t, cal.NextMonth)
		assert.Equal(t, "Jan 2024", cal.RegisteredSince)
		assert.Equal(t, 2024, cal.RegistrationYear)

		first := stats.BuildCalendar(nil, month(2020, time.May), registered, now)
		assert.Equal(t, "January 2024", first.Title)
		assert.False(t, first.CanPrev)
		assert.Equal(t, "2024-02", first.NextMonth)
	})

	t.Run("Days follow the viewer's time zone", func(t *testing.T) {
		ist := time.FixedZone("IST", 5*3600+1800)
		localNow := now.In(ist)
		logs := []domain.LogRecord{{Date: time.Date(2024, 3, 12, 20, 0, 0, 0, time.UTC), Hours: 1}}

		cal := stats.BuildCalendar(logs, time.Date(2024, 3, 1, 0, 0, 0, 0, ist), registered, localNow)

		assert.Equal(t, 1.0, findDay(t, cal, "2024-03-13").Hours)
		assert.Zero(t, findDay(t, cal, "2024-03-12").Hours)
	})
}

func TestParseMonth(t *testing.T) {
	m, err := stats.ParseMonth(" 2024-02 ", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, month(2024, time.February), m)
	assert.Equal(t, "2024-02", stats.FormatMonth(m))

	_, err = stats.ParseMonth("Feb 2024", time.UTC)
	assert.Error(t, err)
}

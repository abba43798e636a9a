package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/niyam-buddy/internal/core/domain"
)

func subjects(entries []domain.RoutineEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Subject)
	}
	return out
}

func TestRoutine_AddEntry(t *testing.T) {
	t.Run("Scenario: Later insert of an earlier class sorts first", func(t *testing.T) {
		r := domain.Routine{"Monday": {}}

		require.NoError(t, r.AddEntry("Monday", "09:00", "10:00", "Math"))
		require.NoError(t, r.AddEntry("Monday", "08:00", "08:30", "Physics"))

		assert.Equal(t, []string{"Physics", "Math"}, subjects(r["Monday"]))
		assert.Equal(t, "08:00 - 08:30", r["Monday"][0].Time)
	})

	t.Run("Success: Day name is case-insensitive", func(t *testing.T) {
		r := domain.NewRoutine()

		require.NoError(t, r.AddEntry("friday", "14:00", "15:00", "Art"))
		assert.Len(t, r["Friday"], 1)
	})

	tests := []struct {
		name    string
		day     string
		start   string
		end     string
		subject string
		wantErr error
	}{
		{"Error: Start equals end", "Monday", "09:00", "09:00", "Math", domain.ErrInvalidTimeRange},
		{"Error: Start after end", "Monday", "11:00", "10:00", "Math", domain.ErrInvalidTimeRange},
		{"Error: Missing subject", "Monday", "09:00", "10:00", "  ", domain.ErrRoutineFieldsRequired},
		{"Error: Missing day", "", "09:00", "10:00", "Math", domain.ErrRoutineFieldsRequired},
		{"Error: Unknown day", "Funday", "09:00", "10:00", "Math", domain.ErrUnknownWeekday},
		{"Error: Not a 24h clock", "Monday", "9:00", "10:00", "Math", domain.ErrInvalidClockTime},
		{"Error: Hour out of range", "Monday", "09:00", "24:00", "Math", domain.ErrInvalidClockTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := domain.NewRoutine()

			err := r.AddEntry(tt.day, tt.start, tt.end, tt.subject)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, r.IsEmpty())
		})
	}
}

func TestRoutine_DeleteEntry(t *testing.T) {
	r := domain.NewRoutine()
	require.NoError(t, r.AddEntry("Tuesday", "08:00", "09:00", "A"))
	require.NoError(t, r.AddEntry("Tuesday", "09:00", "10:00", "B"))
	require.NoError(t, r.AddEntry("Tuesday", "10:00", "11:00", "C"))

	require.NoError(t, r.DeleteEntry("Tuesday", 1))
	assert.Equal(t, []string{"A", "C"}, subjects(r["Tuesday"]))

	assert.ErrorIs(t, r.DeleteEntry("Tuesday", 2), domain.ErrEntryIndexOutOfRange)
	assert.ErrorIs(t, r.DeleteEntry("Tuesday", -1), domain.ErrEntryIndexOutOfRange)
	assert.ErrorIs(t, r.DeleteEntry("Someday", 0), domain.ErrUnknownWeekday)
}

func TestRoutine_Normalize(t *testing.T) {
	r := domain.Routine{
		"monday":  {{StartTime: "08:00", EndTime: "09:00", Subject: "Maths"}},
		"Holiday": {{StartTime: "10:00", EndTime: "11:00", Subject: "Nap"}},
	}

	n := r.Normalize()

	assert.Len(t, n, 7)
	require.Len(t, n["Monday"], 1)
	assert.Equal(t, "08:00 - 09:00", n["Monday"][0].Time)
	assert.NotContains(t, n, "Holiday")
	assert.Empty(t, n["Sunday"])
}

func TestRoutine_CloneIsIndependent(t *testing.T) {
	r := domain.NewRoutine()
	require.NoError(t, r.AddEntry("Monday", "08:00", "09:00", "Maths"))

	c := r.Clone()
	require.NoError(t, c.AddEntry("Monday", "10:00", "11:00", "History"))
	require.NoError(t, c.DeleteEntry("Monday", 0))

	assert.Equal(t, []string{"Maths"}, subjects(r["Monday"]))
	assert.Equal(t, []string{"History"}, subjects(c["Monday"]))
}

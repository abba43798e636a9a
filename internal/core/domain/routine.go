package domain

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	ErrRoutineFieldsRequired = errors.New("please fill all fields")
	ErrInvalidTimeRange      = errors.New("end time must be after start time")
	ErrInvalidClockTime      = errors.New("invalid time format (must be HH:MM 24h)")
	ErrUnknownWeekday        = errors.New("unknown weekday")
	ErrEntryIndexOutOfRange  = errors.New("class entry does not exist")
)

var clockRegex = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9]$`)

// Weekdays is the fixed key order of a routine, Monday first.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

type RoutineEntry struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Subject   string `json:"subject"`
	Time      string `json:"time"`
}

// Routine maps each weekday name to its classes, ordered by start time.
// The whole mapping is saved and loaded as one document.
type Routine map[string][]RoutineEntry

func NewRoutine() Routine {
	r := make(Routine, len(Weekdays))
	for _, d := range Weekdays {
		r[d] = []RoutineEntry{}
	}
	return r
}

func IsWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// NormalizeWeekday accepts any casing ("monday", "MONDAY") and returns the
// canonical key.
func NormalizeWeekday(day string) (string, error) {
	trimmed := strings.TrimSpace(day)
	for _, d := range Weekdays {
		if strings.EqualFold(d, trimmed) {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownWeekday, day)
}

// Normalize returns a routine holding exactly the seven weekday keys. Unknown
// keys are dropped and entries missing their "time" label get one.
func (r Routine) Normalize() Routine {
	out := NewRoutine()
	for day, entries := range r {
		canonical, err := NormalizeWeekday(day)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.Time == "" && e.StartTime != "" && e.EndTime != "" {
				e.Time = timeSlot(e.StartTime, e.EndTime)
			}
			out[canonical] = append(out[canonical], e)
		}
	}
	return out
}

func (r Routine) IsEmpty() bool {
	for _, entries := range r {
		if len(entries) > 0 {
			return false
		}
	}
	return true
}

// AddEntry validates and inserts a class, keeping the day sorted by start
// time. "HH:MM" strings compare correctly as text because they are zero padded.
func (r Routine) AddEntry(day, start, end, subject string) error {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	subject = strings.TrimSpace(subject)

	if strings.TrimSpace(day) == "" || start == "" || end == "" || subject == "" {
		return ErrRoutineFieldsRequired
	}

	canonical, err := NormalizeWeekday(day)
	if err != nil {
		return err
	}

	if !clockRegex.MatchString(start) || !clockRegex.MatchString(end) {
		return ErrInvalidClockTime
	}

	if start >= end {
		return ErrInvalidTimeRange
	}

	entries := append(r[canonical], RoutineEntry{
		StartTime: start,
		EndTime:   end,
		Subject:   subject,
		Time:      timeSlot(start, end),
	})

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].StartTime < entries[j].StartTime
	})

	r[canonical] = entries
	return nil
}

// DeleteEntry removes the class at the given position of the day.
func (r Routine) DeleteEntry(day string, index int) error {
	canonical, err := NormalizeWeekday(day)
	if err != nil {
		return err
	}

	entries := r[canonical]
	if index < 0 || index >= len(entries) {
		return ErrEntryIndexOutOfRange
	}

	next := make([]RoutineEntry, 0, len(entries)-1)
	next = append(next, entries[:index]...)
	next = append(next, entries[index+1:]...)
	r[canonical] = next
	return nil
}

func (r Routine) Clone() Routine {
	out := make(Routine, len(r))
	for day, entries := range r {
		out[day] = append([]RoutineEntry{}, entries...)
	}
	return out
}

func timeSlot(start, end string) string {
	return start + " - " + end
}

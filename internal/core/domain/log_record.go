package domain

import (
	"encoding/json"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidHours    = errors.New("study time must be a number of hours between 0 and 24")
	ErrLogMessageEmpty = errors.New("please describe what you studied")
)

const MaxHoursPerDay = 24

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)`)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// LogRecord is one study session as stored by the backend. A zero Date
// means the backend sent no usable date.
type LogRecord struct {
	ID      string    `json:"_id,omitempty"`
	Date    time.Time `json:"date"`
	Hours   float64   `json:"time"`
	Message string    `json:"message"`
}

func (l LogRecord) HasDate() bool {
	return !l.Date.IsZero()
}

// UnmarshalJSON never fails on a malformed date or time value: the backend
// is loosely typed and one bad record must not hide the others.
func (l *LogRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID      string          `json:"_id"`
		AltID   string          `json:"id"`
		Date    json.RawMessage `json:"date"`
		Time    json.RawMessage `json:"time"`
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	l.ID = raw.ID
	if l.ID == "" {
		l.ID = raw.AltID
	}
	l.Date = parseRawDate(raw.Date)
	l.Hours = ParseHours(raw.Time)

	var msg string
	if err := json.Unmarshal(raw.Message, &msg); err == nil {
		l.Message = msg
	} else {
		l.Message = ""
	}
	return nil
}

// ParseHours coerces a JSON number or numeric string into hours. Anything
// else, including a string without a leading number, yields 0.
func ParseHours(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return finiteOrZero(num)
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return ParseHoursString(str)
	}
	return 0
}

func ParseHoursString(s string) float64 {
	match := leadingNumber.FindString(strings.TrimSpace(s))
	if match == "" {
		return 0
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return finiteOrZero(v)
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func parseRawDate(raw json.RawMessage) time.Time {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}
	}
	return ParseDate(s)
}

// ParseDate accepts ISO-8601 timestamps and plain YYYY-MM-DD dates. It returns
// the zero time when nothing matches.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

type NewLogInput struct {
	Time    string `json:"time"`
	Message string `json:"message"`
}

// Validate checks a log submission before it is sent to the backend. Hours
// must be a plain number, strictly positive and at most a full day.
func (in NewLogInput) Validate() (float64, error) {
	raw := strings.TrimSpace(in.Time)
	hours, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(hours) || hours <= 0 || hours > MaxHoursPerDay {
		return 0, ErrInvalidHours
	}
	if strings.TrimSpace(in.Message) == "" {
		return 0, ErrLogMessageEmpty
	}
	return hours, nil
}

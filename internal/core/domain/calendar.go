package domain

type StudyTier string

const (
	TierNone    StudyTier = ""
	TierNoStudy StudyTier = "no-study"
	TierLow     StudyTier = "low"
	TierMedium  StudyTier = "medium"
	TierHigh    StudyTier = "high"
)

const (
	HighTierHours   = 4.0
	MediumTierHours = 2.0
)

type CalendarDay struct {
	Date         string    `json:"date"`
	Day          int       `json:"day"`
	Hours        float64   `json:"hours"`
	Sessions     int       `json:"sessions"`
	Messages     []string  `json:"messages,omitempty"`
	Tier         StudyTier `json:"tier"`
	Today        bool      `json:"today"`
	OutsideMonth bool      `json:"outside_month"`
}

// CalendarMonth is the month grid shown on the dashboard. Weeks start on
// Sunday; PrevMonth and NextMonth are empty when navigation is not allowed.
type CalendarMonth struct {
	Year             int             `json:"year"`
	Month            int             `json:"month"`
	Title            string          `json:"title"`
	WeekdayLabels    []string        `json:"weekday_labels"`
	Weeks            [][]CalendarDay `json:"weeks"`
	CanPrev          bool            `json:"can_prev"`
	CanNext          bool            `json:"can_next"`
	PrevMonth        string          `json:"prev_month,omitempty"`
	NextMonth        string          `json:"next_month,omitempty"`
	RegisteredSince  string          `json:"registered_since"`
	RegistrationYear int             `json:"registration_year"`
	CurrentYear      int             `json:"current_year"`
}

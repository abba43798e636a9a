package domain

// WeekdayHours is one bar of the weekly progress chart. Day runs 1..7 with
// 1 = Sunday.
type WeekdayHours struct {
	Day   int     `json:"day"`
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

type DashboardStats struct {
	TotalHours    float64        `json:"total_hours"`
	WeeklyAverage float64        `json:"weekly_average"`
	Streak        int            `json:"streak"`
	MonthlyHours  float64        `json:"monthly_hours"`
	WeeklyHours   []WeekdayHours `json:"weekly_hours"`
	RecentLogs    []LogRecord    `json:"recent_logs"`
}

type WeekDay struct {
	Date     string   `json:"date"`
	Weekday  string   `json:"weekday"`
	Day      int      `json:"day"`
	Logged   bool     `json:"logged"`
	Hours    float64  `json:"hours"`
	Messages []string `json:"messages,omitempty"`
	IsToday  bool     `json:"is_today"`
}

// WeekSummary is the Monday-to-today view of the current week.
type WeekSummary struct {
	StartDate         string    `json:"start_date"`
	EndDate           string    `json:"end_date"`
	Days              []WeekDay `json:"days"`
	TotalHours        float64   `json:"total_hours"`
	AverageDailyHours float64   `json:"average_daily_hours"`
	DaysCompleted     int       `json:"days_completed"`
	CompletionRate    int       `json:"completion_rate"`
}

package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/comitanigiacomo/niyam-buddy/internal/core/domain"
	"github.com/comitanigiacomo/niyam-buddy/internal/core/services"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	valueStyle = lipgloss.NewStyle().
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Width(4).
			Align(lipgloss.Right)

	tierStyles = map[domain.StudyTier]lipgloss.Style{
		domain.TierNoStudy: cellStyle.Foreground(lipgloss.Color("196")),
		domain.TierLow:     cellStyle.Foreground(lipgloss.Color("214")),
		domain.TierMedium:  cellStyle.Foreground(lipgloss.Color("39")),
		domain.TierHigh:    cellStyle.Foreground(lipgloss.Color("42")).Bold(true),
	}
)

func formatHours(h float64) string {
	return fmt.Sprintf("%.1fh", h)
}

func stat(label, value string) string {
	return labelStyle.Render(label+": ") + valueStyle.Render(value)
}

func RenderWeek(w domain.WeekSummary) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Week %s to %s", w.StartDate, w.EndDate)))
	b.WriteString("\n")

	for _, d := range w.Days {
		marker := "  "
		if d.IsToday {
			marker = "> "
		}
		hours := mutedStyle.Render("not logged")
		if d.Logged {
			hours = formatHours(d.Hours)
		}
		fmt.Fprintf(&b, "%s%-9s %s  %s\n", marker, d.Weekday, d.Date, hours)
		for _, m := range d.Messages {
			fmt.Fprintf(&b, "      - %s\n", m)
		}
	}

	b.WriteString("\n")
	b.WriteString(strings.Join([]string{
		stat("Total", formatHours(w.TotalHours)),
		stat("Daily average", formatHours(w.AverageDailyHours)),
		stat("Days", fmt.Sprintf("%d (%d%%)", w.DaysCompleted, w.CompletionRate)),
	}, "   "))
	return boxStyle.Render(b.String())
}

func RenderCalendar(m domain.CalendarMonth) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.Title))
	b.WriteString("\n")

	for _, label := range m.WeekdayLabels {
		b.WriteString(cellStyle.Render(label))
	}
	b.WriteString("\n")

	for _, week := range m.Weeks {
		for _, d := range week {
			text := fmt.Sprintf("%d", d.Day)
			if d.Today {
				text = "*" + text
			}
			style, ok := tierStyles[d.Tier]
			switch {
			case d.OutsideMonth && !ok:
				style = cellStyle.Foreground(lipgloss.Color("236"))
			case !ok:
				style = cellStyle
			}
			b.WriteString(style.Render(text))
		}
		b.WriteString("\n")
	}

	nav := []string{}
	if m.CanPrev {
		nav = append(nav, "prev: "+m.PrevMonth)
	}
	if m.CanNext {
		nav = append(nav, "next: "+m.NextMonth)
	}
	nav = append(nav, fmt.Sprintf("years %d-%d", m.RegistrationYear, m.CurrentYear))
	b.WriteString(mutedStyle.Render(strings.Join(nav, "  ")))
	return boxStyle.Render(b.String())
}

func RenderDashboard(v *services.DashboardView) string {
	var b strings.Builder
	greeting := "Hello"
	if name := v.User.DisplayName(); name != "" {
		greeting += ", " + name
	}
	b.WriteString(titleStyle.Render(greeting))
	b.WriteString("\n\n")

	s := v.Stats
	b.WriteString(strings.Join([]string{
		stat("Total", formatHours(s.TotalHours)),
		stat("Weekly average", formatHours(s.WeeklyAverage)),
		stat("Streak", fmt.Sprintf("%d days", s.Streak)),
		stat("This month", formatHours(s.MonthlyHours)),
	}, "   "))
	b.WriteString("\n\n")

	for _, d := range s.WeeklyHours {
		bar := strings.Repeat("#", int(d.Hours+0.5))
		fmt.Fprintf(&b, "%s %5s %s\n", d.Date, formatHours(d.Hours), bar)
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Recent sessions"))
	b.WriteString("\n")
	if len(s.RecentLogs) == 0 {
		b.WriteString(mutedStyle.Render("No study sessions yet"))
		b.WriteString("\n")
	}
	for _, l := range s.RecentLogs {
		date := "unknown date"
		if l.HasDate() {
			date = l.Date.Format("2006-01-02")
		}
		fmt.Fprintf(&b, "%s  %s  %s\n", date, formatHours(l.Hours), l.Message)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		boxStyle.Render(strings.TrimRight(b.String(), "\n")),
		RenderCalendar(v.Calendar),
	)
}

func RenderRoutine(state *services.RoutineState) string {
	var b strings.Builder
	title := "Weekly routine"
	if state.Editing {
		title += " (editing)"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	if state.Schedule.IsEmpty() {
		b.WriteString(mutedStyle.Render("No classes yet. Run `niyam routine edit` to add some."))
		return boxStyle.Render(b.String())
	}

	for _, day := range domain.Weekdays {
		entries := state.Schedule[day]
		b.WriteString(valueStyle.Render(day))
		b.WriteString("\n")
		if len(entries) == 0 {
			b.WriteString(mutedStyle.Render("  no classes"))
			b.WriteString("\n")
		}
		for i, e := range entries {
			fmt.Fprintf(&b, "  %d. %s  %s\n", i+1, e.Time, e.Subject)
		}
	}
	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func RenderGoals(goals []services.GoalView) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Goals"))
	b.WriteString("\n")

	if len(goals) == 0 {
		b.WriteString(mutedStyle.Render("No goals yet"))
		return boxStyle.Render(b.String())
	}

	for _, g := range goals {
		check := "[ ]"
		if g.Completed {
			check = "[x]"
		}
		fmt.Fprintf(&b, "%s %s  %d%%  %s\n", check, g.Title, g.Progress,
			mutedStyle.Render(fmt.Sprintf("%d days left, id %s", g.DaysRemaining, g.ID)))
		if g.Description != "" {
			fmt.Fprintf(&b, "    %s\n", g.Description)
		}
	}
	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func RenderLegal(p domain.LegalPage) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(p.Title))
	b.WriteString("\n\n")
	b.WriteString(p.Intro)
	b.WriteString("\n")

	for _, s := range p.Sections {
		b.WriteString("\n")
		b.WriteString(valueStyle.Render(s.Heading))
		b.WriteString("\n")
		if s.Body != "" {
			b.WriteString(s.Body)
			b.WriteString("\n")
		}
		for _, item := range s.Items {
			fmt.Fprintf(&b, "  - %s\n", item)
		}
	}

	if len(p.Summary) > 0 {
		b.WriteString("\n")
		for _, line := range p.Summary {
			b.WriteString(mutedStyle.Render(line))
			b.WriteString("\n")
		}
	}
	fmt.Fprintf(&b, "\nQuestions? %s\n", domain.ContactEmail)
	return b.String()
}

package cli

import (
	"github.com/comitanigiacomo/niyam-buddy/internal/core/domain"
)

type TodayShowCmd struct{}

func (c *TodayShowCmd) Run(ctx *Context) error {
	if err := ctx.requireSession(); err != nil {
		return err
	}

	view, err := ctx.Study.Today(ctx.Ctx, ctx.Session)
	if err != nil {
		return err
	}
	ctx.println(RenderWeek(view.Week))
	return nil
}

type TodayAddCmd struct {
	Hours   string `arg:"" help:"Hours studied, e.g. 1.5."`
	Message string `arg:"" help:"What you studied."`
}

func (c *TodayAddCmd) Run(ctx *Context) error {
	if err := ctx.requireSession(); err != nil {
		return err
	}

	err := ctx.Study.AddLog(ctx.Ctx, ctx.Session, domain.NewLogInput{
		Time:    c.Hours,
		Message: c.Message,
	})
	if err != nil {
		return err
	}
	ctx.println("Study session logged.")

	view, err := ctx.Study.Today(ctx.Ctx, ctx.Session)
	if err != nil {
		return err
	}
	ctx.println(RenderWeek(view.Week))
	return nil
}

type TodayCmd struct {
	Show TodayShowCmd `cmd:"" help:"This week, Monday to today." default:"1"`
	Add  TodayAddCmd  `cmd:"" help:"Log a study session."`
}

type DashboardCmd struct{}

func (c *DashboardCmd) Run(ctx *Context) error {
	if err := ctx.requireSession(); err != nil {
		return err
	}

	view, err := ctx.Study.Dashboard(ctx.Ctx, ctx.Session)
	if err != nil {
		return err
	}
	ctx.println(RenderDashboard(view))
	return nil
}

type CalendarCmd struct {
	Month string `short:"m" help:"Month to show as YYYY-MM. Defaults to the current month."`
	Year  int    `short:"y" help:"Show the same month in another year."`
}

func (c *CalendarCmd) Run(ctx *Context) error {
	if err := ctx.requireSession(); err != nil {
		return err
	}

	var (
		month *domain.CalendarMonth
		err   error
	)
	if c.Year != 0 {
		month, err = ctx.Study.JumpToYear(ctx.Ctx, ctx.Session, c.Month, c.Year)
	} else {
		month, err = ctx.Study.Calendar(ctx.Ctx, ctx.Session, c.Month)
	}
	if err != nil {
		return err
	}
	ctx.println(RenderCalendar(*month))
	return nil
}

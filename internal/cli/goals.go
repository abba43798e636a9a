package cli

import (
	"errors"

	"github.com/comitanigiacomo/niyam-buddy/internal/core/domain"
	"github.com/comitanigiacomo/niyam-buddy/internal/core/services"
)

var errNothingToUpdate = errors.New("nothing to update, pass at least one flag")

func goalStep(ctx *Context, step func() ([]services.GoalView, error)) error {
	if err := ctx.requireSession(); err != nil {
		return err
	}

	goals, err := step()
	if err != nil {
		return err
	}
	ctx.println(RenderGoals(goals))
	return nil
}

type GoalListCmd struct{}

func (c *GoalListCmd) Run(ctx *Context) error {
	return goalStep(ctx, func() ([]services.GoalView, error) {
		return ctx.Goals.List(ctx.Ctx, ctx.Session)
	})
}

type GoalAddCmd struct {
	Title       string `arg:"" help:"Goal title."`
	Days        int    `short:"d" help:"Days to reach the goal." required:""`
	Description string `help:"Optional description."`
}

func (c *GoalAddCmd) Run(ctx *Context) error {
	return goalStep(ctx, func() ([]services.GoalView, error) {
		return ctx.Goals.Create(ctx.Ctx, ctx.Session, domain.NewGoalInput{
			Title:       c.Title,
			Description: c.Description,
			TargetDays:  c.Days,
		})
	})
}

type GoalUpdateCmd struct {
	ID          string  `arg:"" help:"Goal id as shown by 'goal list'."`
	Title       *string `help:"New title."`
	Description *string `help:"New description."`
	Days        *int    `short:"d" help:"New number of target days."`
	Done        *bool   `help:"Mark completed (--done) or open again (--done=false)."`
	Progress    *int    `short:"p" help:"Progress percentage, 0 to 100."`
}

func (c *GoalUpdateCmd) update() domain.GoalUpdate {
	return domain.GoalUpdate{
		Title:       c.Title,
		Description: c.Description,
		TargetDays:  c.Days,
		Completed:   c.Done,
		Progress:    c.Progress,
	}
}

func (c *GoalUpdateCmd) Run(ctx *Context) error {
	u := c.update()
	if u == (domain.GoalUpdate{}) {
		return errNothingToUpdate
	}
	return goalStep(ctx, func() ([]services.GoalView, error) {
		return ctx.Goals.Update(ctx.Ctx, ctx.Session, c.ID, u)
	})
}

type GoalDeleteCmd struct {
	ID string `arg:"" help:"Goal id as shown by 'goal list'."`
}

func (c *GoalDeleteCmd) Run(ctx *Context) error {
	return goalStep(ctx, func() ([]services.GoalView, error) {
		return ctx.Goals.Delete(ctx.Ctx, ctx.Session, c.ID)
	})
}

type GoalCmd struct {
	List   GoalListCmd   `cmd:"" help:"List goals." default:"1"`
	Add    GoalAddCmd    `cmd:"" help:"Add a goal."`
	Update GoalUpdateCmd `cmd:"" help:"Change a goal."`
	Delete GoalDeleteCmd `cmd:"" help:"Remove a goal."`
}

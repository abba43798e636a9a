package cli

import (
	"fmt"

	"github.com/comitanigiacomo/niyam-buddy/internal/core/services"
)

// routineStep runs one editor operation and prints the resulting routine.
func routineStep(ctx *Context, step func() (*services.RoutineState, error)) error {
	if err := ctx.requireSession(); err != nil {
		return err
	}

	state, err := step()
	if err != nil {
		return err
	}
	ctx.println(RenderRoutine(state))
	return nil
}

type RoutineShowCmd struct {
	Reload bool `short:"r" help:"Discard the local copy and fetch the routine again."`
}

func (c *RoutineShowCmd) Run(ctx *Context) error {
	return routineStep(ctx, func() (*services.RoutineState, error) {
		if c.Reload {
			return ctx.Routine.Load(ctx.Ctx, ctx.Session)
		}
		return ctx.Routine.State(ctx.Ctx, ctx.Session)
	})
}

type RoutineEditCmd struct{}

func (c *RoutineEditCmd) Run(ctx *Context) error {
	return routineStep(ctx, func() (*services.RoutineState, error) {
		return ctx.Routine.BeginEdit(ctx.Ctx, ctx.Session)
	})
}

type RoutineAddCmd struct {
	Day     string `arg:"" help:"Weekday, e.g. Monday."`
	Start   string `arg:"" help:"Start time as HH:MM."`
	End     string `arg:"" help:"End time as HH:MM."`
	Subject string `arg:"" help:"Class or subject."`
}

func (c *RoutineAddCmd) Run(ctx *Context) error {
	return routineStep(ctx, func() (*services.RoutineState, error) {
		return ctx.Routine.AddEntry(ctx.Ctx, ctx.Session, c.Day, c.Start, c.End, c.Subject)
	})
}

type RoutineDeleteCmd struct {
	Day      string `arg:"" help:"Weekday, e.g. Monday."`
	Position int    `arg:"" help:"Position of the class as listed by 'routine show', starting at 1."`
}

func (c *RoutineDeleteCmd) Validate() error {
	if c.Position < 1 {
		return fmt.Errorf("position must be 1 or more")
	}
	return nil
}

func (c *RoutineDeleteCmd) Run(ctx *Context) error {
	return routineStep(ctx, func() (*services.RoutineState, error) {
		return ctx.Routine.DeleteEntry(ctx.Ctx, ctx.Session, c.Day, c.Position-1)
	})
}

type RoutineSaveCmd struct{}

func (c *RoutineSaveCmd) Run(ctx *Context) error {
	return routineStep(ctx, func() (*services.RoutineState, error) {
		return ctx.Routine.Save(ctx.Ctx, ctx.Session)
	})
}

type RoutineCancelCmd struct{}

func (c *RoutineCancelCmd) Run(ctx *Context) error {
	return routineStep(ctx, func() (*services.RoutineState, error) {
		return ctx.Routine.CancelEdit(ctx.Ctx, ctx.Session)
	})
}

type RoutineCmd struct {
	Show   RoutineShowCmd   `cmd:"" help:"Show the weekly routine." default:"1"`
	Edit   RoutineEditCmd   `cmd:"" help:"Enter edit mode."`
	Add    RoutineAddCmd    `cmd:"" help:"Add a class to a day."`
	Delete RoutineDeleteCmd `cmd:"" help:"Remove a class from a day."`
	Save   RoutineSaveCmd   `cmd:"" help:"Send the edited week to the server."`
	Cancel RoutineCancelCmd `cmd:"" help:"Drop local edits and reload."`
}

// Package cli holds the commands of the niyam terminal client. Every
// command runs against one Context built by cmd/niyam.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/niyam-buddy/internal/config"
	"github.com/comitanigiacomo/niyam-buddy/internal/core/services"
	"github.com/comitanigiacomo/niyam-buddy/internal/core/session"
)

var ErrNotSignedIn = errors.New("you are not signed in, run `niyam login` first")

type Context struct {
	Ctx        context.Context
	Config     *config.CLI
	ConfigPath string
	Session    *session.Store
	Auth       *services.AuthService
	Study      *services.StudyService
	Routine    *services.RoutineEditor
	Goals      *services.GoalService
	Contact    *services.ContactService
	Prompt     Prompter
	Out        io.Writer
	Logger     *logrus.Entry
}

// requireSession guards every command that needs a signed-in user.
func (c *Context) requireSession() error {
	if !c.Session.Current().Authenticated() {
		return ErrNotSignedIn
	}
	return nil
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) println(s string) {
	fmt.Fprintln(c.Out, s)
}

// ask fills value through the prompter when it is still blank.
func (c *Context) ask(title string, value *string, secret bool) error {
	if strings.TrimSpace(*value) != "" {
		return nil
	}
	if c.Prompt == nil {
		return fmt.Errorf("%s is required", strings.ToLower(title))
	}
	return c.Prompt.Input(title, value, secret)
}

// Prompter asks the user for a missing value.
type Prompter interface {
	Input(title string, value *string, secret bool) error
}

type HuhPrompter struct{}

func (HuhPrompter) Input(title string, value *string, secret bool) error {
	input := huh.NewInput().
		Title(title).
		Value(value)
	if secret {
		input = input.EchoMode(huh.EchoModePassword)
	}
	return huh.NewForm(huh.NewGroup(input)).Run()
}

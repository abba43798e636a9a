package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/comitanigiacomo/niyam-buddy/internal/cli"
	"github.com/comitanigiacomo/niyam-buddy/internal/config"
	"github.com/comitanigiacomo/niyam-buddy/internal/core/domain"
	"github.com/comitanigiacomo/niyam-buddy/internal/logger"
)

var CLI struct {
	Version    kong.VersionFlag
	Config     string `help:"Config file path." type:"path" default:"~/.config/niyam/config.yaml"`
	BackendURL string `name:"backend-url" help:"Override the backend URL of the config file." env:"NIYAM_BACKEND_URL"`
	Debug      bool   `help:"Mirror logs to stderr."`

	Login    cli.LoginCmd    `cmd:"" help:"Sign in."`
	Logout   cli.LogoutCmd   `cmd:"" help:"Sign out and forget the stored session."`
	Register cli.RegisterCmd `cmd:"" help:"Create an account."`
	Password cli.PasswordCmd `cmd:"" help:"Reset a forgotten password."`
	Whoami   cli.WhoamiCmd   `cmd:"" help:"Show the signed-in user."`

	Today     cli.TodayCmd     `cmd:"" help:"This week's study log."`
	Dashboard cli.DashboardCmd `cmd:"" help:"Study statistics and this month's calendar."`
	Calendar  cli.CalendarCmd  `cmd:"" help:"Study calendar of one month."`
	Routine   cli.RoutineCmd   `cmd:"" help:"Weekly class routine."`
	Goal      cli.GoalCmd      `cmd:"" help:"Study goals."`
	Contact   cli.ContactCmd   `cmd:"" help:"Write to the Niyam Buddy team."`
	Legal     cli.LegalCmd     `cmd:"" help:"Privacy policy and terms of use."`
	Settings  cli.ConfigCmd    `cmd:"" name:"config" help:"Show or change the configuration."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("niyam"),
		kong.Description("Track study hours, your weekly routine and goals from the terminal."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": "v1.0.0"},
	)

	dir, err := config.DefaultDir()
	if err != nil {
		dir = filepath.Dir(CLI.Config)
	}
	cfg, err := config.LoadCLI(CLI.Config, dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if CLI.BackendURL != "" {
		cfg.BackendURL = CLI.BackendURL
	}

	log, logCloser, err := logger.NewFile(logger.FileConfig{
		Path:  cfg.LogFile,
		Level: cfg.LogLevel,
		Debug: CLI.Debug,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	st, closer, err := cli.OpenStorage(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appCtx, err := cli.NewContext(ctx, cfg, CLI.Config, st, os.Stdout, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := kctx.Run(appCtx); err != nil {
		log.WithError(err).WithField("command", kctx.Command()).Error("command failed")
		fmt.Fprintf(os.Stderr, "Error: %s\n", domain.UserMessage(err))
		stop()
		closer.Close()
		logCloser.Close()
		os.Exit(1)
	}
}

package cli

import (
	"errors"
)

type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(ctx *Context) error {
	cfg := ctx.Config
	ctx.println(stat("File", ctx.ConfigPath))
	ctx.println(stat("Backend", cfg.BackendURL))
	ctx.println(stat("Timeout", cfg.Timeout))
	ctx.println(stat("Storage", cfg.Storage))
	ctx.println(stat("Database", cfg.DBPath))
	ctx.println(stat("Log file", cfg.LogFile))
	ctx.println(stat("Log level", cfg.LogLevel))
	return nil
}

type ConfigSetCmd struct {
	BackendURL string `name:"backend-url" help:"Base URL of the Niyam backend."`
	Timeout    string `help:"Request timeout, e.g. 10s."`
	Storage    string `help:"Where the session is kept: sqlite, keyring or memory."`
	LogLevel   string `name:"log-level" help:"debug, info, warn or error."`
}

func (c *ConfigSetCmd) Run(ctx *Context) error {
	if ctx.ConfigPath == "" {
		return errors.New("no config file path")
	}

	next := *ctx.Config
	if c.BackendURL != "" {
		next.BackendURL = c.BackendURL
	}
	if c.Timeout != "" {
		next.Timeout = c.Timeout
	}
	if c.Storage != "" {
		next.Storage = c.Storage
	}
	if c.LogLevel != "" {
		next.LogLevel = c.LogLevel
	}
	if err := next.Validate(); err != nil {
		return err
	}

	if err := next.Save(ctx.ConfigPath); err != nil {
		return err
	}
	*ctx.Config = next
	ctx.printf("Saved %s\n", ctx.ConfigPath)
	return nil
}

type ConfigCmd struct {
	Show ConfigShowCmd `cmd:"" help:"Print the effective configuration." default:"1"`
	Set  ConfigSetCmd  `cmd:"" help:"Change and save configuration values."`
}

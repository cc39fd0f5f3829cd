package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/streakly/internal/cli"
	"github.com/julianstephens/streakly/internal/config"
	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/errors"
	"github.com/julianstephens/streakly/internal/logger"
)

var CLI struct {
	Version    kong.VersionFlag
	Config     string `help:"Storage location: a .db or .json path, :memory:, or a PostgreSQL connection string. PostgreSQL credentials must NOT be embedded; use STREAKLY_DB_CONNECTION, the OS keyring or .pgpass instead." placeholder:"TARGET"`
	ConfigFile string `help:"YAML settings file." name:"config-file" type:"path"`
	Debug      bool   `help:"Enable debug logging to stderr."`

	Init   cli.InitCmd   `cmd:"" help:"Initialize streakly storage."`
	Tui    cli.TuiCmd    `cmd:"" help:"Launch the interactive TUI." default:"1"`
	User   cli.UserCmd   `cmd:"" help:"Manage the name used in greetings."`
	Habit  cli.HabitCmd  `cmd:"" help:"Manage habits."`
	Today  cli.TodayCmd  `cmd:"" help:"Show today's habits and progress."`
	Stats  cli.StatsCmd  `cmd:"" help:"Show habit statistics."`
	Check  cli.CheckCmd  `cmd:"" help:"Check stored habits for problems."`
	Reset  cli.ResetCmd  `cmd:"" help:"Remove a habit directly from storage."`
	Backup cli.BackupCmd `cmd:"" help:"Snapshot and restore the storage file."`
	Cfg    cli.ConfigCmd `cmd:"" name:"config" help:"Manage stored credentials."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Track daily habits and streaks"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load(config.Options{File: CLI.ConfigFile})
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.Config != "" {
		cfg.Storage.Target = CLI.Config
		if !config.IsSpecialTarget(CLI.Config) {
			if cfg.Storage.Target, err = config.ExpandPath(CLI.Config); err != nil {
				errors.Fatal(err)
			}
		}
	}
	if CLI.Debug {
		cfg.Logging.Debug = true
	}

	if err := logger.Init(logger.Config{Debug: cfg.Logging.Debug, LogDir: cfg.Logging.Dir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}
	logger.Debug("Starting", "command", ctx.Command(), "target", cfg.Storage.Target)

	store, err := cli.OpenStore(cfg.Storage.Target, cfg.Storage.Connection)
	if err != nil {
		errors.Fatal(err)
	}

	// init prepares the store itself and config commands only touch the keyring
	command := ctx.Command()
	if command != "init" && !strings.HasPrefix(command, "config ") {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	err = ctx.Run(cli.NewContext(store))
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close storage", "error", closeErr)
	}
	errors.Fatal(err)
}

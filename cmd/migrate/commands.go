package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"stocktrader/internal/config"
	"stocktrader/internal/database"
	"stocktrader/internal/logger"
)

// openManager connects to the database named by DATABASE_URL.
func openManager() (*database.Manager, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	dbConfig, err := database.ParseURL(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}

	return database.NewManager(dbConfig)
}

// withManager runs fn against an open manager and maps the outcome to an exit status.
func withManager(fn func(m *database.Manager) error) subcommands.ExitStatus {
	log := logger.Get()

	m, err := openManager()
	if err != nil {
		log.Errorf("Migration error: %v", err)
		return subcommands.ExitFailure
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	if err := fn(m); err != nil {
		log.Errorf("Migration error: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type upCmd struct{}

func (*upCmd) Name() string             { return "up" }
func (*upCmd) Synopsis() string         { return "apply all pending migrations" }
func (*upCmd) Usage() string            { return "up\n\n  Applies every migration not yet recorded in the database.\n" }
func (*upCmd) SetFlags(_ *flag.FlagSet) {}

func (*upCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withManager(func(m *database.Manager) error {
		if err := m.Migrate(); err != nil {
			return err
		}
		logger.Get().Info("Migrations applied successfully")
		return nil
	})
}

type downCmd struct {
	steps int
}

func (*downCmd) Name() string     { return "down" }
func (*downCmd) Synopsis() string { return "roll back applied migrations" }
func (*downCmd) Usage() string {
	return `down [-steps N]

  Rolls back the N most recent migrations (default 1).
`
}

func (c *downCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.steps, "steps", 1, "number of migrations to roll back")
}

func (c *downCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.steps < 1 {
		logger.Get().Errorf("invalid step count %d", c.steps)
		return subcommands.ExitUsageError
	}
	return withManager(func(m *database.Manager) error {
		if err := m.Rollback(c.steps); err != nil {
			return err
		}
		logger.Get().Infof("Rolled back %d migration(s)", c.steps)
		return nil
	})
}

type versionCmd struct{}

func (*versionCmd) Name() string             { return "version" }
func (*versionCmd) Synopsis() string         { return "print the current schema version" }
func (*versionCmd) Usage() string            { return "version\n\n  Prints the applied schema version and dirty flag.\n" }
func (*versionCmd) SetFlags(_ *flag.FlagSet) {}

func (*versionCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withManager(func(m *database.Manager) error {
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		logger.Get().Infof("Version: %d, Dirty: %v", version, dirty)
		return nil
	})
}

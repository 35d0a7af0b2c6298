package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/infra/db"
	"github.com/expense-tracker/backend/internal/infra/dependency"
)

var (
	flagEnvFile string
	flagVerbose bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "expensectl",
		Short:         "Expense tracker operator CLI",
		Long:          "Run migrations, materialize recurring expenses and inspect a user's budget status.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if flagEnvFile != "" {
				_ = godotenv.Load(flagEnvFile)
			}
			level := slog.LevelWarn
			if flagVerbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	root.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "Environment file to load before reading configuration")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output to stderr")

	root.AddCommand(newMigrateCmd(), newMaterializeCmd(), newStatusCmd())
	return root
}

// app holds the wired dependencies for one command run.
type app struct {
	*dependency.Injector
	close func()
}

// openApp connects to the configured stores and wires the use cases.
func openApp() (*app, error) {
	cfg := config.Load()

	database, err := db.Open(&cfg.Database)
	if err != nil {
		return nil, err
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = db.OpenRedis(&cfg.Redis)
		if err != nil {
			slog.Warn("Redis unavailable, using in-process locks", "error", err)
			redisClient = nil
		}
	}

	closeAll := func() {
		if redisClient != nil {
			_ = redisClient.Close()
		}
		_ = database.Close()
	}

	injector, err := dependency.NewInjector(cfg, database, redisClient)
	if err != nil {
		closeAll()
		return nil, fmt.Errorf("failed to wire dependencies: %w", err)
	}
	return &app{Injector: injector, close: closeAll}, nil
}

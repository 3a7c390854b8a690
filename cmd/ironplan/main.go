package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/myrjola/ironplan/internal/cli"
	"github.com/myrjola/ironplan/internal/envstruct"
	"github.com/myrjola/ironplan/internal/errors"
	"github.com/myrjola/ironplan/internal/logging"
	"github.com/myrjola/ironplan/internal/plan"
	"github.com/myrjola/ironplan/internal/plates"
	"github.com/myrjola/ironplan/internal/sqlite"
)

type config struct {
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"IRONPLAN_SQLITE_URL" envDefault:"./ironplan.sqlite3"`
}

// logLevel is resolved before the config because the logger must exist first.
func logLevel() slog.Level {
	switch os.Getenv("IRONPLAN_LOG_LEVEL") {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool), args []string) error {
	var (
		cancel context.CancelFunc
		err    error
	)

	ctx, cancel = signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	var cfg config
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.LogAttrs(ctx, slog.LevelError, "close db", errors.SlogError(closeErr))
		}
	}()

	app := &cli.App{
		Logger: logger,
		Plans:  plan.NewService(db, logger, plan.DefaultParameters()),
		Plates: plates.NewRepository(db, logger),
	}

	root := cli.New(app)
	root.SetArgs(args)
	if err = root.ExecuteContext(ctx); err != nil {
		return errors.Wrap(err, "execute command")
	}
	return nil
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		AddSource:   false,
		Level:       logLevel(),
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	if err := run(ctx, logger, os.LookupEnv, os.Args[1:]); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure running command", errors.SlogError(err))
		os.Exit(1)
	}
}

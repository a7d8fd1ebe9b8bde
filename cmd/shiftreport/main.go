package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/medicshift/shift-report-backend/internal/cli"
	"github.com/medicshift/shift-report-backend/internal/pkg/database"
	"github.com/medicshift/shift-report-backend/internal/repository/postgresql"

	_ "time/tzdata"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	tz := os.Getenv("APP_TIMEZONE")
	if tz == "" {
		tz = "Asia/Jerusalem"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}

	app := &cli.App{
		Location: loc,
		OpenImporter: func(ctx context.Context, dsn string) (cli.SheetImporter, func(), error) {
			db, err := database.NewPostgreSQLDB(ctx, dsn)
			if err != nil {
				return nil, nil, fmt.Errorf("connect database: %w", err)
			}
			store := postgresql.NewSheetRowStore(db)
			if err := store.EnsureSchema(ctx); err != nil {
				db.Close()
				return nil, nil, err
			}
			return store, db.Close, nil
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

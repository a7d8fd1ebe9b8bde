package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/medicshift/shift-report-backend/internal/config"
	appHTTP "github.com/medicshift/shift-report-backend/internal/handler/http"
	"github.com/medicshift/shift-report-backend/internal/pkg/cron"
	"github.com/medicshift/shift-report-backend/internal/pkg/database"
	"github.com/medicshift/shift-report-backend/internal/pkg/email"
	"github.com/medicshift/shift-report-backend/internal/pkg/fingerprint"
	"github.com/medicshift/shift-report-backend/internal/pkg/jwt"
	"github.com/medicshift/shift-report-backend/internal/pkg/sheets"
	"github.com/medicshift/shift-report-backend/internal/pkg/shifttime"
	"github.com/medicshift/shift-report-backend/internal/pkg/sse"
	"github.com/medicshift/shift-report-backend/internal/repository/postgresql"
	"github.com/medicshift/shift-report-backend/internal/repository/sheet"
	medicService "github.com/medicshift/shift-report-backend/internal/service/medic"
	reportService "github.com/medicshift/shift-report-backend/internal/service/report"
	shiftService "github.com/medicshift/shift-report-backend/internal/service/shift"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	shiftRepo := sheet.NewShiftRepository(store, cfg.Sheets.ShiftSheet)
	medicRepo := sheet.NewMedicRepository(store, cfg.Sheets.MedicSheet)
	doctorRepo := sheet.NewDoctorRepository(store, cfg.Sheets.DoctorSheet)

	emailSvc, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		return err
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub()
	aggregator := shifttime.NewAggregator(cfg.Location(), nil)

	reportSvc := reportService.NewReportService(shiftRepo, aggregator, hub)
	shiftSvc := shiftService.NewShiftService(shiftRepo, reportSvc, emailSvc, cfg.SMTP.NotifyEmail, cfg.Location())
	medicSvc := medicService.NewMedicService(medicRepo, doctorRepo, JWTService, fingerprint.New([]byte(cfg.JWT.Secret)))

	scheduler := cron.NewScheduler()
	if err := cron.NewReportJobs(reportSvc).RegisterJobs(scheduler, cfg.Report.RefreshInterval); err != nil {
		return err
	}

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		appHTTP.NewMedicHandler(medicSvc),
		appHTTP.NewShiftHandler(shiftSvc),
		appHTTP.NewReportHandler(reportSvc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Server running", "addr", server.Addr, "backend", cfg.Sheets.Backend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		scheduler.Start(gctx)
		<-gctx.Done()
		scheduler.Stop()
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := server.Shutdown(shutdownCtx)
		shiftSvc.Wait()
		return err
	})

	return g.Wait()
}

// openStore builds the configured spreadsheet backend. The returned func
// releases its resources.
func openStore(ctx context.Context, cfg *config.Config) (sheets.Store, func(), error) {
	switch cfg.Sheets.Backend {
	case config.BackendGoogle:
		creds, err := os.ReadFile(cfg.Sheets.CredentialsFile)
		if err != nil {
			return nil, nil, fmt.Errorf("read google credentials: %w", err)
		}
		store, err := sheets.NewGoogleStore(ctx, creds, cfg.Sheets.SpreadsheetID)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil

	case config.BackendPostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return nil, nil, fmt.Errorf("connect database: %w", err)
		}
		store := postgresql.NewSheetRowStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, db.Close, nil

	default:
		return sheets.NewXLSXStore(cfg.Sheets.XLSXPath), func() {}, nil
	}
}

package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/medicshift/shift-report-backend/internal/config"
	"github.com/medicshift/shift-report-backend/internal/handler/http/middleware"
	"github.com/medicshift/shift-report-backend/internal/pkg/jwt"
)

const appName = "shift-report"

func NewRouter(
	cfg *config.Config,
	JWTService jwt.Service,
	medicHandler MedicHandler,
	shiftHandler ShiftHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
		Level:       cfg.SlogLevel(),
	})).With(
		slog.String("app", appName),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.CORSAllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/api/health", Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/medics/{medicID}", medicHandler.Identify)
		r.Get("/doctors", medicHandler.ListDoctors)
		r.Get("/instructors", medicHandler.ListInstructors)

		r.Route("/reports", func(r chi.Router) {
			r.Get("/monthly", reportHandler.Monthly)
			r.Get("/months", reportHandler.Months)
			r.Get("/stream", reportHandler.Stream)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)
			r.Use(chiMiddleware.AllowContentType("application/json"))

			r.Post("/shifts", shiftHandler.Submit)
		})
	})
	return r
}

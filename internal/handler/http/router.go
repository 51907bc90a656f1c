package http

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/broker-payroll-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	AppName     string
	Version     string
	Env         string
	FrontendURL string
	// RateLimit uses limiter's formatted syntax, e.g. "60-M".
	RateLimit string
	LogLevel  slog.Level
}

type Handlers struct {
	Time      TimeHandler
	Sale      SaleHandler
	Payroll   PayrollHandler
	HighValue HighValueHandler
	Employee  EmployeeHandler
	Events    EventHandler
	Webhook   WebhookHandler
}

func NewRouter(cfg RouterConfig, jwtService jwt.Service, h Handlers) (*chi.Mux, error) {
	rateLimit, err := middleware.RateLimit(cfg.RateLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to build rate limiter: %w", err)
	}

	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.AppName),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.With(rateLimit).Post("/webhooks/identity", h.Webhook.Identity)

		// Token travels in the query string.
		r.Get("/events/stream", h.Events.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Get("/me", h.Employee.Me)

			r.Route("/time", func(r chi.Router) {
				r.With(rateLimit).Post("/clock-in", h.Time.ClockIn)
				r.With(rateLimit).Post("/clock-out", h.Time.ClockOut)
				r.With(rateLimit).Post("/break/start", h.Time.StartBreak)
				r.With(rateLimit).Post("/break/end", h.Time.EndBreak)
				r.Get("/sessions", h.Time.Sessions)
				r.Get("/summary", h.Time.Summary)
			})

			r.With(rateLimit).Post("/sales", h.Sale.RecordSale)
			r.Get("/sales", h.Sale.ListSales)
			r.With(rateLimit).Post("/reviews", h.Sale.RecordReview)
			r.Get("/reviews", h.Sale.ListReviews)
			r.Get("/bonus/total", h.Sale.BonusTotal)

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/payroll/periods", func(r chi.Router) {
					r.Get("/", h.Payroll.ListPeriods)
					r.Get("/{offset}", h.Payroll.GetPeriod)
					r.Get("/{offset}/export", h.Payroll.ExportPeriod)
				})

				r.Route("/high-value", func(r chi.Router) {
					r.Get("/", h.HighValue.List)
					r.Post("/{id}/adjudicate", h.HighValue.Adjudicate)
				})

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", h.Employee.List)
					r.Get("/{id}", h.Employee.Get)
					r.Put("/{id}/rate", h.Employee.UpdateRate)
				})

				r.Post("/events/token", h.Events.Token)
			})
		})
	})

	return r, nil
}

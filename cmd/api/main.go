package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/broker-payroll-go/internal/config"
	appHTTP "github.com/cmlabs-hris/broker-payroll-go/internal/handler/http"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/cron"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/lock"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/operator"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/sse"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/timeutil"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/webhook"
	"github.com/cmlabs-hris/broker-payroll-go/internal/repository/postgresql"
	authService "github.com/cmlabs-hris/broker-payroll-go/internal/service/auth"
	"github.com/cmlabs-hris/broker-payroll-go/internal/service/bonus"
	employeeService "github.com/cmlabs-hris/broker-payroll-go/internal/service/employee"
	highValueService "github.com/cmlabs-hris/broker-payroll-go/internal/service/highvalue"
	payrollService "github.com/cmlabs-hris/broker-payroll-go/internal/service/payroll"
	saleService "github.com/cmlabs-hris/broker-payroll-go/internal/service/sale"
	timelogService "github.com/cmlabs-hris/broker-payroll-go/internal/service/timelog"
)

const (
	appName    = "broker-payroll"
	appVersion = "v1.0.0"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logLevel := parseLevel(cfg.App.LogLevel)
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	var locker lock.Locker
	rdb, err := lock.NewRedisClient(ctx, lock.RedisOptions{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		slog.Warn("Redis unavailable, clock actions lock per process only", "error", err)
		locker = lock.NewLocalLocker()
	} else {
		defer rdb.Close()
		locker = lock.NewRedisLocker(rdb, appName)
	}

	loc := timeutil.LoadLocation(cfg.App.Timezone)
	reporter := operator.New(cfg.Slack.BotToken, cfg.Slack.OperatorChannel, slog.Default())
	hub := sse.NewHub()
	calculator := bonus.NewCalculator(cfg.Payroll.HighValueThreshold)
	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AcceptableSkew)

	transactor := postgresql.NewTransactor(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	sessionRepo := postgresql.NewTimeSessionRepository(db)
	saleRepo := postgresql.NewSaleRepository(db)
	reviewRepo := postgresql.NewReviewRepository(db)
	ledgerRepo := postgresql.NewBonusLedgerRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	timeLogSvc := timelogService.NewTimeLogService(sessionRepo, employeeRepo, locker, loc)
	saleSvc := saleService.NewSaleService(transactor, saleRepo, reviewRepo, ledgerRepo, notificationRepo, employeeRepo, calculator, hub, reporter, loc)
	highValueSvc := highValueService.NewHighValueService(transactor, notificationRepo, ledgerRepo, calculator)
	payrollSvc := payrollService.NewPayrollService(employeeRepo, sessionRepo, saleRepo, reviewRepo, notificationRepo, calculator, reporter, loc)
	identitySvc := authService.NewIdentityService(employeeSvc)

	verifier, err := webhook.NewVerifier(cfg.Webhook.IdentitySecret)
	if err != nil {
		return err
	}
	if !verifier.Enabled() {
		slog.Warn("IDENTITY_WEBHOOK_SECRET not set, identity webhooks will be rejected")
	}

	router, err := appHTTP.NewRouter(appHTTP.RouterConfig{
		AppName:     appName,
		Version:     appVersion,
		Env:         cfg.App.Env,
		FrontendURL: cfg.App.FrontendURL,
		RateLimit:   cfg.Payroll.RateLimitPerMinute,
		LogLevel:    logLevel,
	}, jwtSvc, appHTTP.Handlers{
		Time:      appHTTP.NewTimeHandler(timeLogSvc),
		Sale:      appHTTP.NewSaleHandler(saleSvc),
		Payroll:   appHTTP.NewPayrollHandler(payrollSvc),
		HighValue: appHTTP.NewHighValueHandler(highValueSvc),
		Employee:  appHTTP.NewEmployeeHandler(employeeSvc),
		Events:    appHTTP.NewEventHandler(hub, jwtSvc),
		Webhook:   appHTTP.NewWebhookHandler(identitySvc, verifier),
	})
	if err != nil {
		return err
	}

	scheduler := cron.NewScheduler()
	cron.NewStaleSessionJobs(sessionRepo, reporter, loc, cfg.Payroll.StaleSessionCheckInterval).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "timezone", loc.String(), "high_value_threshold", calculator.Threshold().StringFixed(2))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

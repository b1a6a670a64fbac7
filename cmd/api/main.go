package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/utp-plus/report-service/internal/api/http"
	"github.com/utp-plus/report-service/internal/api/http/handlers"
	"github.com/utp-plus/report-service/internal/auth"
	"github.com/utp-plus/report-service/internal/clock"
	"github.com/utp-plus/report-service/internal/config"
	"github.com/utp-plus/report-service/internal/events"
	"github.com/utp-plus/report-service/internal/observability"
	"github.com/utp-plus/report-service/internal/persistence"
	"github.com/utp-plus/report-service/internal/repository"
	"github.com/utp-plus/report-service/internal/service"
	"github.com/utp-plus/report-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clk := clock.NewSystem(cfg.Report.Location())

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.PoolHandle() != nil && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var (
		userRepo     repository.UserRepository
		reportRepo   repository.ReportRepository
		feedbackRepo repository.FeedbackRepository
	)
	if pool := pg.PoolHandle(); pool != nil {
		userRepo = repository.NewUserRepository(pool)
		reportRepo = repository.NewReportRepository(pool)
		feedbackRepo = repository.NewFeedbackRepository(pool)
	} else {
		userRepo = repository.NewMemoryUserRepository(clk)
		reportRepo = repository.NewMemoryReportRepository(clk)
		feedbackRepo = repository.NewMemoryFeedbackRepository(clk)
	}

	dispatcher := events.NewInMemoryDispatcher()
	dangerPolicy := service.NewThresholdZonePolicy(reportRepo, clk, cfg.DangerZone.Threshold, cfg.DangerZone.Window())

	userService := service.NewUserService(service.UserDependencies{
		UserRepo:    userRepo,
		BcryptCost:  cfg.Auth.BcryptCost,
		EmailDomain: cfg.Report.EmailDomain,
	})
	if _, err := userService.EnsureSuperuser(ctx, cfg.Seed.SuperuserName, cfg.Seed.SuperuserEmail, cfg.Seed.SuperuserPassword); err != nil {
		logger.Fatal("failed to ensure superuser", zap.Error(err))
	}

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo: userRepo,
		Clock:    clk,
	})
	reportService := service.NewReportService(service.ReportDependencies{
		ReportRepo:   reportRepo,
		FeedbackRepo: feedbackRepo,
		Dispatcher:   dispatcher,
		DangerPolicy: dangerPolicy,
		Clock:        clk,
		DailyLimit:   cfg.Report.DailyLimit,
	})
	feedbackService := service.NewFeedbackService(service.FeedbackDependencies{
		FeedbackRepo: feedbackRepo,
		ReportRepo:   reportRepo,
		Dispatcher:   dispatcher,
		Clock:        clk,
	})
	sosService := service.NewSOSService(dispatcher, clk)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification, redis)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Reports:        handlers.NewReportsHandler(reportService),
		Feedback:       handlers.NewFeedbackHandler(feedbackService),
		Users:          handlers.NewUsersHandler(userService),
		SOS:            handlers.NewSOSHandler(sosService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/config"
	"storefront/internal/email"
	"storefront/internal/googleid"
	"storefront/internal/health"
	"storefront/internal/infrastructure/postgres"
	ctxlog "storefront/internal/log"
	"storefront/internal/metrics"
	httptransport "storefront/internal/transport/http"
	"storefront/internal/transport/http/handler"
	"storefront/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	emailSender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)
	googleVerifier := googleid.NewVerifier(cfg.GoogleClientID)

	// Auth
	userRepo := postgres.NewUserRepository(pool)
	codeRepo := postgres.NewCodeRepository(pool)
	authUsecase := usecase.NewAuthUsecase(
		userRepo, codeRepo, emailSender, googleVerifier,
		[]byte(cfg.JWTSecret), cfg.OTPDeterministic,
	)
	authHandler := handler.NewAuthHandler(authUsecase, handler.AuthConfig{
		EmitCookie:   cfg.AuthEmitCookie,
		EmitBody:     cfg.AuthEmitBody,
		SecureCookie: cfg.Env == "production",
	}, logger)

	// Catalog
	productRepo := postgres.NewProductRepository(pool)
	productHandler := handler.NewProductHandler(usecase.NewProductUsecase(productRepo), logger)

	announcementRepo := postgres.NewAnnouncementRepository(pool)
	announcementHandler := handler.NewAnnouncementHandler(usecase.NewAnnouncementUsecase(announcementRepo), logger)

	postRepo := postgres.NewPostRepository(pool)
	feedHandler := handler.NewFeedHandler(usecase.NewFeedUsecase(postRepo), logger)

	// Customers and quotes
	customerHandler := handler.NewCustomerHandler(usecase.NewCustomerUsecase(userRepo), logger)

	quoteRepo := postgres.NewQuoteRepository(pool)
	quoteUsecase := usecase.NewQuoteUsecase(quoteRepo, emailSender, cfg.SalesEmail, logger)
	quoteHandler := handler.NewQuoteHandler(quoteUsecase, logger)

	metrics.Register()
	checker := health.NewChecker(logger, prometheus.DefaultRegisterer)
	checker.Add("postgres", pool)

	srv := http.Server{
		Addr: ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, httptransport.Handlers{
			Auth:         authHandler,
			Product:      productHandler,
			Announcement: announcementHandler,
			Feed:         feedHandler,
			Customer:     customerHandler,
			Quote:        quoteHandler,
		}, []byte(cfg.JWTSecret)),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	// Hourly cleanup of expired one-time codes.
	c := cron.New()
	_, err = c.AddFunc("@hourly", func() {
		purgeCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		n, err := authUsecase.PurgeExpiredCodes(purgeCtx)
		if err != nil {
			logger.Error("purge expired codes", "error", err)
			return
		}
		metrics.CodesPurgedTotal.Add(float64(n))
		logger.Info("purged expired codes", "count", n)
	})
	if err != nil {
		stop()
		log.Fatalf("cron: %v", err)
	}
	c.Start()

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	<-c.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}

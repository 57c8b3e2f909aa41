package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brewline/internal/auth"
	"brewline/internal/config"
	"brewline/internal/db"
	"brewline/internal/logging"
	"brewline/internal/menu"
	"brewline/internal/metrics"
	"brewline/internal/middleware"
	"brewline/internal/order"
	"brewline/internal/router"
	"brewline/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	cfg, err := config.Load()
	if err != nil {
		logging.New("error").WithError(err).Fatal("invalid configuration")
	}

	log := logging.New(cfg.LogLevel)
	if os.Getenv("APP_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ───────────────────────── DB ─────────────────────────
	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		log.WithError(err).Fatal("migrations failed")
	}

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	defer pool.Close()

	// ───────────────────────── STORAGE ─────────────────────────
	var images menu.Storage
	if cfg.Storage.Enabled() {
		r2Client, err := storage.NewR2Client(ctx, cfg.Storage)
		if err != nil {
			log.WithError(err).Fatal("R2 init failed")
		}
		images = r2Client
	} else {
		log.Warn("R2 storage not configured, menu image uploads disabled")
	}

	// ───────────────────────── SERVICES ─────────────────────────
	authService := auth.NewService(auth.NewPostgresUserRepository(pool), cfg.Auth.MasterEmail, log)
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	menuService := menu.NewService(menu.NewPostgresRepository(pool), images, log)
	orderService := order.NewService(order.NewPostgresRepository(pool), menuService, metrics.Recorder{}, log)

	if _, err := authService.EnsureMaster(ctx, cfg.Auth.MasterEmail, cfg.Auth.MasterPassword); err != nil {
		log.WithError(err).Fatal("ensure master failed")
	}

	if cfg.SeedMenu {
		if err := menuService.Seed(ctx); err != nil {
			log.WithError(err).Fatal("menu seed failed")
		}
	}

	// ───────────────────────── HTTP ─────────────────────────
	limiter := middleware.NewRateLimiter(cfg.Auth.LoginRatePerMinute, cfg.Auth.LoginBurst)
	limiter.StartCleanup(time.Minute, ctx.Done())

	engine := router.New(router.Deps{
		Log:         log,
		CORSOrigins: cfg.CORSOrigins,
		Tokens:      tokens,
		Users:       authService,
		Limiter:     limiter,
		Auth:        auth.NewHandler(authService, tokens),
		Menu:        menu.NewHandler(menuService),
		Orders:      order.NewHandler(orderService),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}

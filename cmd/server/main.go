package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/emgbraker/greencompanions/config"
	"github.com/emgbraker/greencompanions/internal/cache"
	"github.com/emgbraker/greencompanions/internal/database"
	"github.com/emgbraker/greencompanions/internal/jobs/memberships"
	"github.com/emgbraker/greencompanions/internal/logger"
	"github.com/emgbraker/greencompanions/internal/repository"
	"github.com/emgbraker/greencompanions/internal/router"
	"github.com/emgbraker/greencompanions/internal/service"
	"github.com/emgbraker/greencompanions/internal/ws"
	"github.com/emgbraker/greencompanions/pkg/cloudinary"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		logger.Error("database connect failed", "error", err)
		os.Exit(1)
	}
	if err := database.AutoMigrate(db); err != nil {
		logger.Error("migrate failed", "error", err)
		os.Exit(1)
	}
	database.SeedAdmin(db, os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD"))

	c, err := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		// Cache methods tolerate nil; the app degrades to DB-only reads.
		logger.Warn("redis unavailable, running without cache", "error", err)
		c = nil
	} else {
		defer c.Close()
	}

	cloud, err := cloudinary.NewClientFromParams(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
	if err != nil {
		logger.Error("cloudinary init failed", "error", err)
		os.Exit(1)
	}

	mail := service.NewMailService(&cfg.Resend)
	hub := ws.NewHub()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	membershipRepo := repository.NewMembershipRepository(db)
	notifSvc := service.NewNotificationService(repository.NewNotificationRepository(db))
	sweep := memberships.NewRunner(membershipRepo, mail, notifSvc, cfg.Jobs.MembershipCheckInterval, cfg.Jobs.ExpiryNoticeDays)
	go sweep.Run(ctx)

	engine := router.Setup(router.Deps{
		Cfg:   cfg,
		DB:    db,
		Cache: c,
		Cloud: cloud,
		Mail:  mail,
		Hub:   hub,
	})
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Info("server listening", "port", cfg.Server.Port, "env", cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/config"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/infra"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/repository"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/router"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Worker pool for async jobs (alertas de stock, envío de reportes).
	// Handlers are wired here (composition root) so the pool has full
	// access to the SMTP mailer and its circuit breaker.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	smtpCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	dispatcher := worker.NewDispatcher(rdb)

	handlers := &worker.Handlers{
		Alerta:  worker.NewAlertaWorker(mailer, smtpCB, rdb, cfg.AlertasEmail, time.Duration(cfg.AlertasDedupMin)*time.Minute),
		Reporte: worker.NewReporteWorker(mailer),
	}
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, handlers)

	// Periodic sweep for rows below minimum in eventos activos
	worker.StartAlertaCron(ctx, worker.AlertaCronConfig{
		InventarioRepo: repository.NewInventarioRepository(db),
		Dispatcher:     dispatcher,
		CB:             smtpCB,
		Interval:       time.Duration(cfg.AlertasSweepSeg) * time.Second,
	})

	r := router.New(cfg, db, rdb, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("sysfront backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}

package worker

// alerta_cron.go
// Background sweep that periodically scans the per-event inventory of
// every evento activo for rows below their minimum and enqueues alert
// jobs. Catches manual adjustments and rows whose inline alert was lost;
// the worker-side dedup keeps the sweep from spamming.

import (
	"context"
	"strconv"
	"time"

	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/infra"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/repository"

	"github.com/rs/zerolog/log"
)

// AlertaCronConfig holds all dependencies for the sweep goroutine.
type AlertaCronConfig struct {
	InventarioRepo repository.InventarioRepository
	Dispatcher     *Dispatcher
	CB             *infra.CircuitBreaker
	Interval       time.Duration
}

// StartAlertaCron launches a background goroutine that ticks every
// cfg.Interval and enqueues alerts for rows below minimum.
// It respects the context for graceful shutdown.
func StartAlertaCron(ctx context.Context, cfg AlertaCronConfig) {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		log.Info().Dur("interval", cfg.Interval).Msg("alerta_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("alerta_cron: shutting down")
				return
			case <-ticker.C:
				sweepBajoMinimo(ctx, cfg)
			}
		}
	}()
}

func sweepBajoMinimo(ctx context.Context, cfg AlertaCronConfig) {
	// If the SMTP breaker is open the worker would only pile DLQ entries.
	if cfg.CB != nil && cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("alerta_cron: circuit breaker is open, skipping tick")
		return
	}

	productos, err := cfg.InventarioRepo.ListProductosBajoMinimo(ctx)
	if err != nil {
		log.Error().Err(err).Msg("alerta_cron: failed to list productos bajo minimo")
		return
	}
	insumos, err := cfg.InventarioRepo.ListInsumosBajoMinimo(ctx)
	if err != nil {
		log.Error().Err(err).Msg("alerta_cron: failed to list insumos bajo minimo")
		return
	}
	if len(productos) == 0 && len(insumos) == 0 {
		return
	}

	log.Info().Int("productos", len(productos)).Int("insumos", len(insumos)).Msg("alerta_cron: rows below minimum")

	for i := range productos {
		row := &productos[i]
		payload := AlertaStockPayload{
			EventoID: row.EventoID.String(),
			TipoItem: "producto",
			ItemID:   row.ProductoID.String(),
			Actual:   strconv.Itoa(row.CantidadActual),
			Minima:   strconv.Itoa(row.CantidadMinima),
		}
		if row.Producto != nil {
			payload.Nombre = row.Producto.Nombre
		}
		if err := cfg.Dispatcher.EnqueueAlertaStock(ctx, payload); err != nil {
			log.Error().Err(err).Str("producto_id", payload.ItemID).Msg("alerta_cron: enqueue failed")
		}
	}
	for i := range insumos {
		row := &insumos[i]
		payload := AlertaStockPayload{
			EventoID: row.EventoID.String(),
			TipoItem: "insumo",
			ItemID:   row.InsumoID.String(),
			Actual:   row.CantidadActual.String(),
			Minima:   row.CantidadMinima.String(),
		}
		if row.Insumo != nil {
			payload.Nombre = row.Insumo.Nombre
		}
		if err := cfg.Dispatcher.EnqueueAlertaStock(ctx, payload); err != nil {
			log.Error().Err(err).Str("insumo_id", payload.ItemID).Msg("alerta_cron: enqueue failed")
		}
	}
}

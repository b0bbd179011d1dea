package worker

// alerta_worker.go
// Processes low-stock alert jobs from QueueAlertas: dedups per item via
// Redis SETNX, then emails the operations inbox through the SMTP circuit
// breaker. A flapping quantity around the minimum produces one email per
// dedup window, not one per pedido.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const maxAlertaAttempts = 3

// AlertaWorker processes low-stock alerts from QueueAlertas.
type AlertaWorker struct {
	mailer       *infra.Mailer
	cb           *infra.CircuitBreaker
	rdb          *redis.Client
	destinatario string
	dedupTTL     time.Duration
}

// NewAlertaWorker wires the alert pipeline dependencies. destinatario is
// the ops inbox (ALERTAS_EMAIL); dedupTTL bounds how often the same item
// can re-alert.
func NewAlertaWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker, rdb *redis.Client, destinatario string, dedupTTL time.Duration) *AlertaWorker {
	if dedupTTL <= 0 {
		dedupTTL = 30 * time.Minute
	}
	return &AlertaWorker{mailer: mailer, cb: cb, rdb: rdb, destinatario: destinatario, dedupTTL: dedupTTL}
}

// Process handles a single alerta_stock job:
//  1. Parse AlertaStockPayload
//  2. SETNX dedup key — duplicate inside the window is dropped silently
//  3. Send the email through the circuit breaker with retries
//  4. Exhausted retries → DLQ and release the dedup key so the next
//     crossing can try again
func (w *AlertaWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload AlertaStockPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alerta_worker: invalid payload")
		return
	}
	if w.destinatario == "" {
		log.Warn().Msg("alerta_worker: ALERTAS_EMAIL not configured — dropping alert")
		return
	}

	dedupKey := fmt.Sprintf("alerta:stock:%s:%s:%s", payload.EventoID, payload.TipoItem, payload.ItemID)
	ok, err := w.rdb.SetNX(ctx, dedupKey, "1", w.dedupTTL).Result()
	if err != nil {
		log.Error().Err(err).Str("key", dedupKey).Msg("alerta_worker: dedup check failed")
		// Redis hiccup: alert anyway, a duplicate email beats a missed one
	} else if !ok {
		log.Debug().Str("key", dedupKey).Msg("alerta_worker: duplicate alert inside dedup window")
		return
	}

	subject := fmt.Sprintf("Stock bajo: %s", payload.Nombre)
	body := fmt.Sprintf(
		"El %s %q quedó por debajo del mínimo configurado.\n\nEvento: %s\nCantidad actual: %s\nCantidad mínima: %s\n",
		payload.TipoItem, payload.Nombre, payload.EventoID, payload.Actual, payload.Minima,
	)

	sendErr := withRetry(ctx, maxAlertaAttempts, func(attempt int) error {
		return w.cb.Execute(func() error {
			return w.mailer.SendAlerta(w.destinatario, subject, body)
		})
	})
	if sendErr != nil {
		log.Error().Err(sendErr).Str("item", payload.Nombre).Msg("alerta_worker: failed to send alert after retries")
		SendToDLQ(ctx, w.rdb, QueueAlertas, "alerta_stock", raw, sendErr.Error(), maxAlertaAttempts)
		// Release the dedup key so the next crossing re-alerts
		_ = w.rdb.Del(ctx, dedupKey).Err()
		return
	}
	log.Info().Str("item", payload.Nombre).Str("tipo", payload.TipoItem).Msg("alerta_worker: alert sent")
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}

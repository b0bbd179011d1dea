package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueAlertas  = "jobs:alertas"
	QueueReportes = "jobs:reportes"
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// AlertaStockPayload is the job envelope sent to QueueAlertas when a
// ledger row crosses below its configured minimum. Quantities travel as
// strings so product units (int) and supply units (decimal) share one shape.
type AlertaStockPayload struct {
	EventoID string `json:"evento_id"`
	TipoItem string `json:"tipo_item"` // "producto" | "insumo"
	ItemID   string `json:"item_id"`
	Nombre   string `json:"nombre"`
	Actual   string `json:"actual"`
	Minima   string `json:"minima"`
}

// ReporteEmailPayload is the job envelope sent to QueueReportes. The PDF
// is generated synchronously by the handler; the worker only mails it.
type ReporteEmailPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueAlertaStock pushes a low-stock alert job to Redis.
func (d *Dispatcher) EnqueueAlertaStock(ctx context.Context, payload AlertaStockPayload) error {
	return d.enqueue(ctx, QueueAlertas, "alerta_stock", payload)
}

// EnqueueReporteEmail pushes a report-mailing job to Redis.
func (d *Dispatcher) EnqueueReporteEmail(ctx context.Context, payload ReporteEmailPayload) error {
	return d.enqueue(ctx, QueueReportes, "reporte_email", payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// Handlers routes dequeued jobs to their processors.
type Handlers struct {
	Alerta  *AlertaWorker
	Reporte *ReporteWorker
}

// StartWorkerPool launches numWorkers goroutines consuming both queues.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int, handlers *Handlers) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, i, handlers)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, id int, handlers *Handlers) {
	queues := []string{QueueAlertas, QueueReportes}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, handlers, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, handlers *Handlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}
	switch job.Type {
	case "alerta_stock":
		if handlers != nil && handlers.Alerta != nil {
			handlers.Alerta.Process(ctx, job.Payload)
		}
	case "reporte_email":
		if handlers != nil && handlers.Reporte != nil {
			handlers.Reporte.Process(ctx, job.Payload)
		}
	default:
		log.Warn().Str("type", job.Type).Str("queue", queue).Msg("unknown job type — dropping")
	}
}

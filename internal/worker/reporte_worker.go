package worker

// reporte_worker.go
// Processes report-mailing jobs from QueueReportes. The statistics PDF is
// generated synchronously by the handler; this worker only attaches and
// sends it.

import (
	"context"
	"encoding/json"

	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/infra"

	"github.com/rs/zerolog/log"
)

// ReporteWorker mails generated PDF reports via SMTP.
type ReporteWorker struct {
	mailer *infra.Mailer
}

func NewReporteWorker(mailer *infra.Mailer) *ReporteWorker {
	return &ReporteWorker{mailer: mailer}
}

// Process sends an email with the PDF report as attachment.
func (w *ReporteWorker) Process(_ context.Context, raw json.RawMessage) {
	var payload ReporteEmailPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("reporte_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("reporte_worker: empty to_email — skipping")
		return
	}

	if err := w.mailer.SendReporte(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath); err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("reporte_worker: failed to send report")
		return
	}
	log.Info().Str("to", payload.ToEmail).Str("pdf", payload.PDFPath).Msg("reporte_worker: report sent")
}

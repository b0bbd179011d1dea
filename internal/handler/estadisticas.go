package handler

import (
	"fmt"
	"net/http"

	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/apierror"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/dto"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/infra"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/service"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/worker"

	"github.com/gin-gonic/gin"
)

type EstadisticasHandler struct {
	svc            service.EstadisticasService
	dispatcher     *worker.Dispatcher
	pdfStoragePath string
}

func NewEstadisticasHandler(svc service.EstadisticasService, dispatcher *worker.Dispatcher, pdfStoragePath string) *EstadisticasHandler {
	return &EstadisticasHandler{svc: svc, dispatcher: dispatcher, pdfStoragePath: pdfStoragePath}
}

// Resumen godoc
// @Summary      Estadísticas del evento
// @Description  Rollup financiero y por producto: inversión, ingresos, ganancia, vendidos, desperdicio, ventas por método y por cajero. Solo lectura.
// @Tags         estadisticas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del evento"
// @Success      200 {object} dto.EstadisticasResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/eventos/{id}/estadisticas [get]
func (h *EstadisticasHandler) Resumen(c *gin.Context) {
	eventoID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Resumen(c.Request.Context(), eventoID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DescargarPDF godoc
// @Summary      Descargar reporte PDF del evento
// @Tags         estadisticas
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id path string true "UUID del evento"
// @Success      200 {file} file
// @Failure      404 {object} apierror.APIError
// @Router       /v1/eventos/{id}/estadisticas/pdf [get]
func (h *EstadisticasHandler) DescargarPDF(c *gin.Context) {
	eventoID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	stats, err := h.svc.Resumen(c.Request.Context(), eventoID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	path, err := infra.GenerarReporteEventoPDF(stats, h.pdfStoragePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("No se pudo generar el reporte"))
		return
	}
	c.FileAttachment(path, fmt.Sprintf("reporte_%s.pdf", stats.NombreEvento))
}

// EnviarPDF godoc
// @Summary      Enviar reporte PDF por email
// @Description  Genera el PDF y despacha el envío por email de forma asíncrona.
// @Tags         estadisticas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del evento"
// @Param        body body dto.EnviarReporteRequest true "Destinatario"
// @Success      202  {object} map[string]string
// @Failure      404  {object} apierror.APIError
// @Router       /v1/eventos/{id}/estadisticas/email [post]
func (h *EstadisticasHandler) EnviarPDF(c *gin.Context) {
	eventoID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.EnviarReporteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	stats, err := h.svc.Resumen(c.Request.Context(), eventoID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	path, err := infra.GenerarReporteEventoPDF(stats, h.pdfStoragePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("No se pudo generar el reporte"))
		return
	}
	payload := worker.ReporteEmailPayload{
		ToEmail: req.Email,
		Subject: fmt.Sprintf("Reporte de evento — %s", stats.NombreEvento),
		Body:    fmt.Sprintf("Adjunto encontrarás el reporte del evento %q.", stats.NombreEvento),
		PDFPath: path,
	}
	if err := h.dispatcher.EnqueueReporteEmail(c.Request.Context(), payload); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("No se pudo despachar el envio"))
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"detail": "Reporte en camino a " + req.Email})
}

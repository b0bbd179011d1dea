package handler

import (
	"net/http"

	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/apierror"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/dto"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type EventosHandler struct{ svc service.EventoService }

func NewEventosHandler(svc service.EventoService) *EventosHandler {
	return &EventosHandler{svc: svc}
}

// Crear godoc
// @Summary      Crear evento
// @Description  Crea un evento en estado planificado.
// @Tags         eventos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearEventoRequest true "Datos del evento"
// @Success      201  {object} dto.EventoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/eventos [post]
func (h *EventosHandler) Crear(c *gin.Context) {
	var req dto.CrearEventoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Obtener godoc
// @Summary      Detalle de un evento
// @Tags         eventos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del evento"
// @Success      200 {object} dto.EventoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/eventos/{id} [get]
func (h *EventosHandler) Obtener(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar godoc
// @Summary      Listar eventos
// @Tags         eventos
// @Produce      json
// @Security     BearerAuth
// @Param        incluir_inactivos query bool false "Incluir eventos eliminados"
// @Success      200 {array} dto.EventoResponse
// @Router       /v1/eventos [get]
func (h *EventosHandler) Listar(c *gin.Context) {
	incluirInactivos := c.Query("incluir_inactivos") == "true"
	resp, err := h.svc.Listar(c.Request.Context(), incluirInactivos)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary      Actualizar evento
// @Description  Modifica datos del evento. Las transiciones de estado solo avanzan: planificado → activo → cerrado.
// @Tags         eventos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del evento"
// @Param        body body dto.ActualizarEventoRequest true "Campos a actualizar"
// @Success      200  {object} dto.EventoResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/eventos/{id} [put]
func (h *EventosHandler) Actualizar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarEventoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar godoc
// @Summary      Eliminar evento
// @Description  Baja lógica. Un evento activo no puede eliminarse.
// @Tags         eventos
// @Security     BearerAuth
// @Param        id path string true "UUID del evento"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /v1/eventos/{id} [delete]
func (h *EventosHandler) Eliminar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package handler

import (
	"net/http"

	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/dto"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type InsumosHandler struct{ svc service.CatalogoService }

func NewInsumosHandler(svc service.CatalogoService) *InsumosHandler {
	return &InsumosHandler{svc: svc}
}

// Crear godoc
// @Summary      Crear insumo
// @Tags         insumos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearInsumoRequest true "Datos del insumo"
// @Success      201  {object} dto.InsumoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/insumos [post]
func (h *InsumosHandler) Crear(c *gin.Context) {
	var req dto.CrearInsumoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearInsumo(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary      Listar insumos del catálogo
// @Tags         insumos
// @Produce      json
// @Security     BearerAuth
// @Param        incluir_inactivos query bool false "Incluir insumos dados de baja"
// @Success      200 {array} dto.InsumoResponse
// @Router       /v1/insumos [get]
func (h *InsumosHandler) Listar(c *gin.Context) {
	incluirInactivos := c.Query("incluir_inactivos") == "true"
	resp, err := h.svc.ListarInsumos(c.Request.Context(), incluirInactivos)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary      Actualizar insumo
// @Description  El costo de catálogo afecta cálculos futuros; los inventarios ya cargados conservan su costo.
// @Tags         insumos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del insumo"
// @Param        body body dto.ActualizarInsumoRequest true "Campos a actualizar"
// @Success      200  {object} dto.InsumoResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/insumos/{id} [put]
func (h *InsumosHandler) Actualizar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarInsumoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarInsumo(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Desactivar godoc
// @Summary      Dar de baja un insumo
// @Description  Baja lógica: las recetas que lo referencian pasan a reportarlo como faltante.
// @Tags         insumos
// @Security     BearerAuth
// @Param        id path string true "UUID del insumo"
// @Success      204
// @Router       /v1/insumos/{id} [delete]
func (h *InsumosHandler) Desactivar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DesactivarInsumo(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reactivar godoc
// @Summary      Reactivar insumo
// @Tags         insumos
// @Security     BearerAuth
// @Param        id path string true "UUID del insumo"
// @Success      204
// @Router       /v1/insumos/{id}/reactivar [post]
func (h *InsumosHandler) Reactivar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.ReactivarInsumo(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/dto"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// InventarioHandler covers the per-evento ledger: cargas, lecturas,
// ajustes manuales and the advisory cost calculator.
type InventarioHandler struct {
	svc   service.InventarioService
	costo service.CostoService
}

func NewInventarioHandler(svc service.InventarioService, costo service.CostoService) *InventarioHandler {
	return &InventarioHandler{svc: svc, costo: costo}
}

// CalcularCosto godoc
// @Summary      Calcular costo de un producto para un evento (dry-run)
// @Description  Resuelve la receta contra el inventario del evento y el catálogo. No tiene efectos secundarios; dos llamadas consecutivas responden lo mismo.
// @Tags         inventario
// @Produce      json
// @Security     BearerAuth
// @Param        id          path string true "UUID del evento"
// @Param        productoID  path string true "UUID del producto"
// @Success      200 {object} dto.CostoCalculadoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/eventos/{id}/productos/{productoID}/costo [get]
func (h *InventarioHandler) CalcularCosto(c *gin.Context) {
	eventoID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	productoID, ok := parseUUIDParam(c, "productoID")
	if !ok {
		return
	}
	resp, err := h.costo.CalcularCosto(c.Request.Context(), eventoID, productoID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CargarProductos godoc
// @Summary      Cargar productos al inventario del evento
// @Description  Carga batch. Los rechazos son por ítem: el resto del lote se carga igual. Para productos con receta el costo calculado pisa el costo enviado.
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del evento"
// @Param        body body dto.CargarProductosRequest true "Ítems a cargar"
// @Success      200  {object} dto.CargaResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/eventos/{id}/inventario/productos [post]
func (h *InventarioHandler) CargarProductos(c *gin.Context) {
	eventoID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CargarProductosRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CargarProductos(c.Request.Context(), eventoID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CargarInsumos godoc
// @Summary      Cargar insumos al inventario del evento
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del evento"
// @Param        body body dto.CargarInsumosRequest true "Ítems a cargar"
// @Success      200  {object} dto.CargaResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/eventos/{id}/inventario/insumos [post]
func (h *InventarioHandler) CargarInsumos(c *gin.Context) {
	eventoID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CargarInsumosRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CargarInsumos(c.Request.Context(), eventoID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarProductos godoc
// @Summary      Inventario de productos del evento
// @Tags         inventario
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del evento"
// @Success      200 {array} dto.InventarioProductoResponse
// @Router       /v1/eventos/{id}/inventario/productos [get]
func (h *InventarioHandler) ListarProductos(c *gin.Context) {
	eventoID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarProductos(c.Request.Context(), eventoID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarInsumos godoc
// @Summary      Inventario de insumos del evento
// @Tags         inventario
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del evento"
// @Success      200 {array} dto.InventarioInsumoResponse
// @Router       /v1/eventos/{id}/inventario/insumos [get]
func (h *InventarioHandler) ListarInsumos(c *gin.Context) {
	eventoID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarInsumos(c.Request.Context(), eventoID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarMovimientos godoc
// @Summary      Auditoría de movimientos de inventario del evento
// @Tags         inventario
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string true  "UUID del evento"
// @Param        limit query int    false "Máximo de registros (default 100, tope 500)"
// @Success      200 {array} dto.MovimientoResponse
// @Router       /v1/eventos/{id}/inventario/movimientos [get]
func (h *InventarioHandler) ListarMovimientos(c *gin.Context) {
	eventoID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	resp, err := h.svc.ListarMovimientos(c.Request.Context(), eventoID, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarProducto godoc
// @Summary      Ajuste manual de un producto del inventario
// @Description  Corrige cantidades, mínimos, costo y precio. El costo de productos con receta no es editable. Registra movimiento de ajuste manual.
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id          path string true "UUID del evento"
// @Param        productoID  path string true "UUID del producto"
// @Param        body        body dto.ActualizarInventarioProductoRequest true "Campos a ajustar"
// @Success      200 {object} dto.InventarioProductoResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/eventos/{id}/inventario/productos/{productoID} [put]
func (h *InventarioHandler) ActualizarProducto(c *gin.Context) {
	eventoID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	productoID, ok := parseUUIDParam(c, "productoID")
	if !ok {
		return
	}
	var req dto.ActualizarInventarioProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarProducto(c.Request.Context(), eventoID, productoID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarInsumo godoc
// @Summary      Ajuste manual de un insumo del inventario
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id        path string true "UUID del evento"
// @Param        insumoID  path string true "UUID del insumo"
// @Param        body      body dto.ActualizarInventarioInsumoRequest true "Campos a ajustar"
// @Success      200 {object} dto.InventarioInsumoResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/eventos/{id}/inventario/insumos/{insumoID} [put]
func (h *InventarioHandler) ActualizarInsumo(c *gin.Context) {
	eventoID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	insumoID, ok := parseUUIDParam(c, "insumoID")
	if !ok {
		return
	}
	var req dto.ActualizarInventarioInsumoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarInsumo(c.Request.Context(), eventoID, insumoID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EliminarProducto godoc
// @Summary      Quitar un producto del inventario del evento
// @Description  Rechazado si el producto ya tiene pedidos en el evento.
// @Tags         inventario
// @Security     BearerAuth
// @Param        id          path string true "UUID del evento"
// @Param        productoID  path string true "UUID del producto"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /v1/eventos/{id}/inventario/productos/{productoID} [delete]
func (h *InventarioHandler) EliminarProducto(c *gin.Context) {
	eventoID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	productoID, ok := parseUUIDParam(c, "productoID")
	if !ok {
		return
	}
	if err := h.svc.EliminarProducto(c.Request.Context(), eventoID, productoID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// EliminarInsumo godoc
// @Summary      Quitar un insumo del inventario del evento
// @Description  Rechazado si algún producto cargado en el evento lo usa en su receta.
// @Tags         inventario
// @Security     BearerAuth
// @Param        id        path string true "UUID del evento"
// @Param        insumoID  path string true "UUID del insumo"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /v1/eventos/{id}/inventario/insumos/{insumoID} [delete]
func (h *InventarioHandler) EliminarInsumo(c *gin.Context) {
	eventoID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	insumoID, ok := parseUUIDParam(c, "insumoID")
	if !ok {
		return
	}
	if err := h.svc.EliminarInsumo(c.Request.Context(), eventoID, insumoID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package handler

import (
	"net/http"

	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/dto"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/middleware"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PedidosHandler struct{ svc service.PedidoService }

func NewPedidosHandler(svc service.PedidoService) *PedidosHandler {
	return &PedidosHandler{svc: svc}
}

// Crear godoc
// @Summary      Crear pedido
// @Description  Crea un pedido PENDIENTE y descuenta stock en la misma transacción: el producto y, vía receta, cada insumo. Cualquier faltante cancela el pedido completo.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del evento"
// @Param        body body dto.CrearPedidoRequest true "Ítems y método de pago"
// @Success      201  {object} dto.PedidoResponse
// @Failure      409  {object} apierror.APIError "Stock insuficiente"
// @Router       /v1/eventos/{id}/pedidos [post]
func (h *PedidosHandler) Crear(c *gin.Context) {
	eventoID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CrearPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Crear(c.Request.Context(), eventoID, usuarioID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary      Listar pedidos del evento
// @Tags         pedidos
// @Produce      json
// @Security     BearerAuth
// @Param        id     path  string true  "UUID del evento"
// @Param        estado query string false "PENDIENTE | EN_PREPARACION | COMPLETADO | CANCELADO"
// @Param        page   query int    false "Página (default 1)"
// @Param        limit  query int    false "Registros por página (default 50)"
// @Success      200 {object} dto.PedidoListResponse
// @Router       /v1/eventos/{id}/pedidos [get]
func (h *PedidosHandler) Listar(c *gin.Context) {
	eventoID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var filter dto.PedidoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondServiceError(c, err)
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), eventoID, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancelar godoc
// @Summary      Cancelar pedido
// @Description  Cancela desde PENDIENTE o EN_PREPARACION y restaura el stock descontado (producto y receta). Pedidos COMPLETADOS no se cancelan.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del pedido"
// @Param        body body dto.CancelarPedidoRequest true "Motivo"
// @Success      204
// @Failure      409  {object} apierror.APIError "Transición inválida"
// @Router       /v1/pedidos/{id}/cancelar [post]
func (h *PedidosHandler) Cancelar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CancelarPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Cancelar(c.Request.Context(), id, req.Motivo); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

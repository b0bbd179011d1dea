package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/dto"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// tableroCacheTTL is short on purpose: the kitchen board polls every few
// seconds and a slightly stale list is acceptable; the estado transitions
// themselves are always CAS-checked against the DB.
const tableroCacheTTL = 5 * time.Second

// CocinaHandler serves the kitchen board: active orders plus the
// PENDIENTE → EN_PREPARACION → COMPLETADO transitions.
type CocinaHandler struct {
	svc service.PedidoService
	rdb *redis.Client
}

func NewCocinaHandler(svc service.PedidoService, rdb *redis.Client) *CocinaHandler {
	return &CocinaHandler{svc: svc, rdb: rdb}
}

// Tablero godoc
// @Summary      Tablero de cocina
// @Description  Pedidos PENDIENTE y EN_PREPARACION del evento, ordenados por llegada. Cacheado 5s en Redis.
// @Tags         cocina
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del evento"
// @Success      200 {array} dto.PedidoResponse
// @Router       /v1/cocina/eventos/{id}/pedidos [get]
func (h *CocinaHandler) Tablero(c *gin.Context) {
	eventoID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	cacheKey := "cocina:tablero:" + eventoID.String()

	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp []dto.PedidoResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	resp, err := h.svc.ListarActivos(ctx, eventoID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, tableroCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}

// Iniciar godoc
// @Summary      Tomar pedido para preparación
// @Description  PENDIENTE → EN_PREPARACION. Si dos cocineros toman el mismo pedido, solo el primero gana; el segundo recibe 409.
// @Tags         cocina
// @Produce      json
// @Security     BearerAuth
// @Param        id        path string true "UUID del evento"
// @Param        pedidoID  path string true "UUID del pedido"
// @Success      200 {object} dto.PedidoResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/cocina/eventos/{id}/pedidos/{pedidoID}/iniciar [post]
func (h *CocinaHandler) Iniciar(c *gin.Context) {
	pedidoID, ok := parseUUIDParam(c, "pedidoID")
	if !ok {
		return
	}
	resp, err := h.svc.IniciarPreparacion(c.Request.Context(), pedidoID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.invalidarTablero(c)
	c.JSON(http.StatusOK, resp)
}

// Completar godoc
// @Summary      Marcar pedido como listo
// @Description  EN_PREPARACION → COMPLETADO. El stock ya fue descontado al crear el pedido; completar no toca inventario.
// @Tags         cocina
// @Produce      json
// @Security     BearerAuth
// @Param        id        path string true "UUID del evento"
// @Param        pedidoID  path string true "UUID del pedido"
// @Success      200 {object} dto.PedidoResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/cocina/eventos/{id}/pedidos/{pedidoID}/completar [post]
func (h *CocinaHandler) Completar(c *gin.Context) {
	pedidoID, ok := parseUUIDParam(c, "pedidoID")
	if !ok {
		return
	}
	resp, err := h.svc.CompletarPreparacion(c.Request.Context(), pedidoID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.invalidarTablero(c)
	c.JSON(http.StatusOK, resp)
}

func (h *CocinaHandler) invalidarTablero(c *gin.Context) {
	if eventoID := c.Param("id"); eventoID != "" {
		_ = h.rdb.Del(context.Background(), "cocina:tablero:"+eventoID).Err()
	}
}

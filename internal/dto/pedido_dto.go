package dto

import "github.com/shopspring/decimal"

type ItemPedidoRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
}

type CrearPedidoRequest struct {
	Items         []ItemPedidoRequest `json:"items"       validate:"required,min=1,dive"`
	MetodoPago    string              `json:"metodo_pago" validate:"required,oneof=efectivo debito credito transferencia"`
	Cliente       *string             `json:"cliente"`
	Observaciones *string             `json:"observaciones"`
}

type CancelarPedidoRequest struct {
	Motivo string `json:"motivo" validate:"required,min=5"`
}

type PedidoFilter struct {
	Estado string `form:"estado"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ItemPedidoResponse struct {
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type PedidoResponse struct {
	ID            string               `json:"id"`
	NumeroPedido  int                  `json:"numero_pedido"`
	EventoID      string               `json:"evento_id"`
	Estado        string               `json:"estado"`
	Items         []ItemPedidoResponse `json:"items"`
	Total         decimal.Decimal      `json:"total"`
	MetodoPago    string               `json:"metodo_pago"`
	Cliente       *string              `json:"cliente,omitempty"`
	Observaciones *string              `json:"observaciones,omitempty"`
	CreadoPor     string               `json:"creado_por"`
	CreatedAt     string               `json:"created_at"`
}

type PedidoListResponse struct {
	Data  []PedidoResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

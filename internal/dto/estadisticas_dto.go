package dto

import "github.com/shopspring/decimal"

// EstadisticasResponse is the read-only rollup for one evento. Derived
// exclusively from the ledger and the pedidos; computing it never
// mutates either.
type EstadisticasResponse struct {
	EventoID     string `json:"evento_id"`
	NombreEvento string `json:"nombre_evento"`

	// InversionTotal is the capital committed: Σ costo × cantidad_inicial
	// over both ledgers.
	InversionTotal decimal.Decimal `json:"inversion_total"`

	IngresoBruto   decimal.Decimal `json:"ingreso_bruto"`   // Σ total, pedidos COMPLETADO
	TotalCancelado decimal.Decimal `json:"total_cancelado"` // Σ total, pedidos CANCELADO
	IngresoNeto    decimal.Decimal `json:"ingreso_neto"`
	GananciaNeta   decimal.Decimal `json:"ganancia_neta"` // ingreso_neto - inversion_total

	PedidosCompletados int64 `json:"pedidos_completados"`
	PedidosCancelados  int64 `json:"pedidos_cancelados"`

	Productos  []EstadisticaProducto `json:"productos"`
	PorMetodo  []VentasPorMetodo     `json:"por_metodo_pago"`
	PorCajero  []VentasPorCajero     `json:"por_cajero"`
	MasVendidos []TopProducto        `json:"mas_vendidos"`
}

// EstadisticaProducto uses vendidos = inicial - actual as a proxy for
// units sold, and treats every leftover unit as desperdicio. Single-day
// events rarely distinguish spoilage from overstock, so desperdicio ==
// sobrante here on purpose.
type EstadisticaProducto struct {
	ProductoID             string          `json:"producto_id"`
	Nombre                 string          `json:"nombre"`
	CantidadInicial        int             `json:"cantidad_inicial"`
	Vendidos               int             `json:"vendidos"`
	Restante               int             `json:"restante"`
	PorcentajeDesperdicio  decimal.Decimal `json:"porcentaje_desperdicio"`
	Costo                  decimal.Decimal `json:"costo"`
	PrecioVenta            decimal.Decimal `json:"precio_venta"`
	MargenGanancia         decimal.Decimal `json:"margen_ganancia"`
}

type VentasPorMetodo struct {
	MetodoPago string          `json:"metodo_pago"`
	Pedidos    int64           `json:"pedidos"`
	Total      decimal.Decimal `json:"total"`
}

type VentasPorCajero struct {
	UsuarioID string          `json:"usuario_id"`
	Nombre    string          `json:"nombre"`
	Pedidos   int64           `json:"pedidos"`
	Total     decimal.Decimal `json:"total"`
}

type EnviarReporteRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type TopProducto struct {
	ProductoID string          `json:"producto_id"`
	Nombre     string          `json:"nombre"`
	Vendidos   int64           `json:"vendidos"`
	Ingreso    decimal.Decimal `json:"ingreso"`
}

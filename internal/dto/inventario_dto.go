package dto

import "github.com/shopspring/decimal"

// ─── Costo calculado (dry-run) ───────────────────────────────────────────────

// CostoCalculadoResponse is the advisory result of the cost calculator.
// It never mutates anything: callers run it before committing a carga.
type CostoCalculadoResponse struct {
	ProductoID       string          `json:"producto_id"`
	TieneReceta      bool            `json:"tiene_receta"`
	CostoCalculado   decimal.Decimal `json:"costo_calculado"`
	PuedeCargar      bool            `json:"puede_cargar"`
	InsumosFaltantes []string        `json:"insumos_faltantes,omitempty"`
	Mensaje          string          `json:"mensaje,omitempty"`
}

// ─── Carga de inventario ─────────────────────────────────────────────────────

type CargarProductoItem struct {
	ProductoID      string `json:"producto_id" validate:"required,uuid"`
	CantidadInicial int    `json:"cantidad_inicial"`
	CantidadMinima  int    `json:"cantidad_minima"  validate:"min=0"`
	// Costo is honored only for productos sin receta; for recipe products
	// the calculated cost always wins.
	Costo       *decimal.Decimal `json:"costo"`
	PrecioVenta decimal.Decimal  `json:"precio_venta" validate:"min=0"`
}

type CargarProductosRequest struct {
	Items []CargarProductoItem `json:"items" validate:"required,min=1,dive"`
}

type CargarInsumoItem struct {
	InsumoID        string          `json:"insumo_id" validate:"required,uuid"`
	CantidadInicial decimal.Decimal `json:"cantidad_inicial"`
	CantidadMinima  decimal.Decimal `json:"cantidad_minima"`
	// Costo overrides the catalog cost for this evento; nil keeps catalog.
	Costo *decimal.Decimal `json:"costo"`
}

type CargarInsumosRequest struct {
	Items []CargarInsumoItem `json:"items" validate:"required,min=1,dive"`
}

// ItemRechazado explains a per-item rejection inside a batch carga.
// Rejections are per-item, never batch-fatal.
type ItemRechazado struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre,omitempty"`
	Motivo string `json:"motivo"`
}

type CargaResponse struct {
	Cargados   int             `json:"cargados"`
	Rechazados []ItemRechazado `json:"rechazados,omitempty"`
}

// ─── Actualización manual ────────────────────────────────────────────────────

type ActualizarInventarioProductoRequest struct {
	CantidadActual *int             `json:"cantidad_actual"`
	CantidadMinima *int             `json:"cantidad_minima" validate:"omitempty,min=0"`
	Costo          *decimal.Decimal `json:"costo"`
	PrecioVenta    *decimal.Decimal `json:"precio_venta"`
	Motivo         string           `json:"motivo"`
}

type ActualizarInventarioInsumoRequest struct {
	CantidadActual *decimal.Decimal `json:"cantidad_actual"`
	CantidadMinima *decimal.Decimal `json:"cantidad_minima"`
	Costo          *decimal.Decimal `json:"costo"`
	Motivo         string           `json:"motivo"`
}

// ─── Lecturas ────────────────────────────────────────────────────────────────

type InventarioProductoResponse struct {
	ProductoID      string          `json:"producto_id"`
	Nombre          string          `json:"nombre"`
	CantidadInicial int             `json:"cantidad_inicial"`
	CantidadActual  int             `json:"cantidad_actual"`
	CantidadMinima  int             `json:"cantidad_minima"`
	Costo           decimal.Decimal `json:"costo"`
	PrecioVenta     decimal.Decimal `json:"precio_venta"`
	MargenGanancia  decimal.Decimal `json:"margen_ganancia"`
	TieneReceta     bool            `json:"tiene_receta"`
	BajoMinimo      bool            `json:"bajo_minimo"`
	Activo          bool            `json:"activo"`
}

type InventarioInsumoResponse struct {
	InsumoID        string          `json:"insumo_id"`
	Nombre          string          `json:"nombre"`
	Unidad          string          `json:"unidad"`
	CantidadInicial decimal.Decimal `json:"cantidad_inicial"`
	CantidadActual  decimal.Decimal `json:"cantidad_actual"`
	CantidadMinima  decimal.Decimal `json:"cantidad_minima"`
	Costo           decimal.Decimal `json:"costo"`
	BajoMinimo      bool            `json:"bajo_minimo"`
	Activo          bool            `json:"activo"`
}

type MovimientoResponse struct {
	ID               string          `json:"id"`
	TipoItem         string          `json:"tipo_item"`
	ReferenciaID     string          `json:"referencia_id"`
	Tipo             string          `json:"tipo"`
	Cantidad         decimal.Decimal `json:"cantidad"`
	CantidadAnterior decimal.Decimal `json:"cantidad_anterior"`
	CantidadNueva    decimal.Decimal `json:"cantidad_nueva"`
	Motivo           string          `json:"motivo,omitempty"`
	PedidoID         *string         `json:"pedido_id,omitempty"`
	CreatedAt        string          `json:"created_at"`
}

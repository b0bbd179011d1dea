package dto

import "github.com/shopspring/decimal"

// ─── Insumos ─────────────────────────────────────────────────────────────────

type CrearInsumoRequest struct {
	Nombre string          `json:"nombre" validate:"required"`
	Unidad string          `json:"unidad" validate:"required,max=10"`
	Costo  decimal.Decimal `json:"costo"  validate:"min=0"`
}

type ActualizarInsumoRequest struct {
	Nombre *string          `json:"nombre"`
	Unidad *string          `json:"unidad" validate:"omitempty,max=10"`
	Costo  *decimal.Decimal `json:"costo"  validate:"omitempty,min=0"`
}

type InsumoResponse struct {
	ID     string          `json:"id"`
	Nombre string          `json:"nombre"`
	Unidad string          `json:"unidad"`
	Costo  decimal.Decimal `json:"costo"`
	Activo bool            `json:"activo"`
}

// ─── Productos ───────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Nombre      string  `json:"nombre" validate:"required"`
	Descripcion *string `json:"descripcion"`
}

type ActualizarProductoRequest struct {
	Nombre      *string `json:"nombre"`
	Descripcion *string `json:"descripcion"`
}

type ProductoResponse struct {
	ID          string              `json:"id"`
	Nombre      string              `json:"nombre"`
	Descripcion *string             `json:"descripcion,omitempty"`
	TieneReceta bool                `json:"tiene_receta"`
	Receta      []RecetaLineaResponse `json:"receta,omitempty"`
	Activo      bool                `json:"activo"`
}

// ─── Receta ──────────────────────────────────────────────────────────────────

// RecetaLineaRequest is one (insumo, cantidad) pair. PUT /productos/:id/insumos
// replaces the full receta with the given set.
type RecetaLineaRequest struct {
	InsumoID          string          `json:"insumo_id"           validate:"required,uuid"`
	CantidadPorUnidad decimal.Decimal `json:"cantidad_por_unidad" validate:"required"`
}

type ActualizarRecetaRequest struct {
	Insumos []RecetaLineaRequest `json:"insumos" validate:"dive"`
}

type RecetaLineaResponse struct {
	InsumoID          string          `json:"insumo_id"`
	NombreInsumo      string          `json:"nombre_insumo"`
	Unidad            string          `json:"unidad"`
	CantidadPorUnidad decimal.Decimal `json:"cantidad_por_unidad"`
	CostoUnitario     decimal.Decimal `json:"costo_unitario"`
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventarioProductoEvento is the per-event stock row for a producto.
// CantidadInicial is set once at load time and immutable thereafter;
// 0 <= CantidadActual <= CantidadInicial holds at all times.
// Costo is manual when !TieneReceta, otherwise derived from the receta
// at load time. MargenGanancia = (PrecioVenta - Costo) / PrecioVenta * 100,
// 0 when PrecioVenta is 0.
type InventarioProductoEvento struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EventoID        uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_evento_producto;not null"`
	ProductoID      uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_evento_producto;not null"`
	CantidadInicial int       `gorm:"not null"`
	CantidadActual  int       `gorm:"not null"`
	CantidadMinima  int       `gorm:"not null;default:0"`
	Costo           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PrecioVenta     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	MargenGanancia  decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	// TieneReceta is denormalized from the catalog at load time so the
	// decrement cascade never needs a catalog round-trip.
	TieneReceta bool `gorm:"not null;default:false"`
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (InventarioProductoEvento) TableName() string { return "inventario_productos_evento" }

// InventarioInsumoEvento is the per-event stock row for an insumo.
// Quantities are decimal (Kg, Lt). Costo is a per-event override of the
// catalog cost and feeds the cost calculator for recipe products loaded
// into the same evento.
type InventarioInsumoEvento struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EventoID        uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_evento_insumo;not null"`
	InsumoID        uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_evento_insumo;not null"`
	CantidadInicial decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	CantidadActual  decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	CantidadMinima  decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	Costo           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Activo          bool            `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Insumo *Insumo `gorm:"foreignKey:InsumoID"`
}

func (InventarioInsumoEvento) TableName() string { return "inventario_insumos_evento" }

// CalcularMargen computes the profit margin over sale price.
// Returns 0 when precioVenta is 0 (margin is undefined, not infinite).
func CalcularMargen(precioVenta, costo decimal.Decimal) decimal.Decimal {
	if precioVenta.IsZero() {
		return decimal.Zero
	}
	cien := decimal.NewFromInt(100)
	return precioVenta.Sub(costo).Div(precioVenta).Mul(cien).Round(2)
}

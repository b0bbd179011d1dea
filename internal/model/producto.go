package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a sellable catalog entry. A producto either has no receta
// (per-event cost is entered manually) or has receta rows in
// ProductoInsumo, in which case its cost is always derived from the
// insumos and never overridden by hand.
type Producto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"index;not null"`
	Descripcion *string
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Receta []ProductoInsumo `gorm:"foreignKey:ProductoID"`
}

// TieneReceta reports whether the producto has at least one receta line.
// Only meaningful when Receta was preloaded or explicitly fetched.
func (p *Producto) TieneReceta() bool { return len(p.Receta) > 0 }

// ProductoInsumo is one receta line: how much of an insumo one unit of
// the producto consumes. One row per (producto, insumo) pair.
type ProductoInsumo struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_producto_insumo;not null"`
	InsumoID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_producto_insumo;not null"`
	// CantidadPorUnidad must be > 0 (validated at the service layer)
	CantidadPorUnidad decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	CreatedAt         time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
	Insumo   *Insumo   `gorm:"foreignKey:InsumoID"`
}

// TableName overrides GORM's default pluralization.
func (ProductoInsumo) TableName() string { return "producto_insumos" }

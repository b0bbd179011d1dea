package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Insumo is a raw-material catalog entry (harina, queso, vasos).
// Costo is the catalog per-unit cost; eventos may override it in their
// own InventarioInsumoEvento row. Insumos referenced by recetas or
// ledger rows are deactivated, never hard-deleted.
type Insumo struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"index;not null"`
	Unidad    string    `gorm:"type:varchar(10);not null;default:'Uni'"` // "Uni" | "Kg" | "Lt" | ...
	Costo     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Activo    bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovimientoInventario registra cada cambio de stock en una fila del
// inventario de un evento. Se crea automáticamente al cargar, vender,
// cancelar o ajustar.
type MovimientoInventario struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EventoID uuid.UUID `gorm:"type:uuid;not null;index"`
	// TipoItem: "producto" | "insumo"; ReferenciaID is the producto/insumo id.
	TipoItem     string    `gorm:"type:varchar(10);not null"`
	ReferenciaID uuid.UUID `gorm:"type:uuid;not null;index"`
	Tipo         string    `gorm:"not null"` // "carga" | "venta" | "cancelacion" | "ajuste_manual"
	Cantidad     decimal.Decimal `gorm:"type:decimal(12,3);not null"` // positive = entrada, negative = salida
	CantidadAnterior decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	CantidadNueva    decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Motivo       string
	PedidoID     *uuid.UUID `gorm:"type:uuid;index"` // set for venta / cancelacion
	CreatedAt    time.Time
}

// TableName overrides GORM's default pluralization.
func (MovimientoInventario) TableName() string { return "movimientos_inventario" }

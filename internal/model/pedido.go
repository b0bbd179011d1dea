package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados del pedido. Forward-only: PENDIENTE → EN_PREPARACION →
// COMPLETADO, with CANCELADO reachable from PENDIENTE or EN_PREPARACION.
const (
	PedidoPendiente     = "PENDIENTE"
	PedidoEnPreparacion = "EN_PREPARACION"
	PedidoCompletado    = "COMPLETADO"
	PedidoCancelado     = "CANCELADO"
)

// Pedido is an order placed by caja and fulfilled by cocina. Stock is
// committed at creation time (a PENDIENTE pedido already holds its
// reservation); cancellation restores it.
type Pedido struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EventoID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_evento_numero;index;not null"`
	// NumeroPedido is sequential per evento, assigned at creation, immutable.
	NumeroPedido  int    `gorm:"uniqueIndex:idx_evento_numero;not null"`
	Estado        string `gorm:"type:varchar(20);not null;default:'PENDIENTE';index"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MetodoPago    string          `gorm:"type:varchar(20);not null"`
	Cliente       *string
	Observaciones *string
	CreadoPor     uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Items   []PedidoItem `gorm:"foreignKey:PedidoID"`
	Cajero  *Usuario     `gorm:"foreignKey:CreadoPor"`
}

// PedidoItem snapshots nombre and precio at creation time so historical
// pedidos stay queryable even if the inventory row is later removed or
// repriced. It references the producto by id only.
type PedidoItem struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID       uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductoID     uuid.UUID `gorm:"type:uuid;not null;index"`
	NombreProducto string    `gorm:"not null"`
	Cantidad       int       `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

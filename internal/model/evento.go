package model

import (
	"time"

	"github.com/google/uuid"
)

// Evento is the time-boxed operational context (a single day's service,
// a fair, a festival). Every inventory row and pedido belongs to exactly
// one evento; the catalog (Producto/Insumo) is shared across eventos.
// Estado: "planificado" | "activo" | "cerrado"
type Evento struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"not null"`
	Descripcion *string
	Fecha       time.Time `gorm:"not null;index"`
	Ubicacion   *string
	Estado      string `gorm:"type:varchar(20);not null;default:'planificado'"`
	Activo      bool   `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

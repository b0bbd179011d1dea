package repository

import (
	"context"

	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MovimientoRepository interface {
	// CreateTx writes the movimiento inside the mutating transaction so
	// the audit row commits (or rolls back) with the stock change itself.
	CreateTx(tx *gorm.DB, m *model.MovimientoInventario) error
	List(ctx context.Context, eventoID uuid.UUID, limit int) ([]model.MovimientoInventario, error)
}

type movimientoRepo struct{ db *gorm.DB }

func NewMovimientoRepository(db *gorm.DB) MovimientoRepository { return &movimientoRepo{db: db} }

func (r *movimientoRepo) CreateTx(tx *gorm.DB, m *model.MovimientoInventario) error {
	return tx.Create(m).Error
}

func (r *movimientoRepo) List(ctx context.Context, eventoID uuid.UUID, limit int) ([]model.MovimientoInventario, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var movs []model.MovimientoInventario
	err := r.db.WithContext(ctx).
		Where("evento_id = ?", eventoID).
		Order("created_at DESC").
		Limit(limit).
		Find(&movs).Error
	return movs, err
}

package repository

import (
	"context"

	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventoRepository interface {
	Create(ctx context.Context, e *model.Evento) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Evento, error)
	List(ctx context.Context, incluirInactivos bool) ([]model.Evento, error)
	Update(ctx context.Context, e *model.Evento) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// LockTx takes the evento row FOR UPDATE inside tx. Pedido creation
	// locks it first so numero_pedido assignment serializes per evento.
	LockTx(tx *gorm.DB, id uuid.UUID) (*model.Evento, error)
}

type eventoRepo struct{ db *gorm.DB }

func NewEventoRepository(db *gorm.DB) EventoRepository { return &eventoRepo{db: db} }

func (r *eventoRepo) Create(ctx context.Context, e *model.Evento) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *eventoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Evento, error) {
	var e model.Evento
	err := r.db.WithContext(ctx).First(&e, id).Error
	return &e, err
}

func (r *eventoRepo) List(ctx context.Context, incluirInactivos bool) ([]model.Evento, error) {
	var eventos []model.Evento
	q := r.db.WithContext(ctx).Order("fecha DESC")
	if !incluirInactivos {
		q = q.Where("activo = true")
	}
	err := q.Find(&eventos).Error
	return eventos, err
}

func (r *eventoRepo) Update(ctx context.Context, e *model.Evento) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *eventoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Evento{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *eventoRepo) LockTx(tx *gorm.DB, id uuid.UUID) (*model.Evento, error) {
	var e model.Evento
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&e, id).Error
	return &e, err
}

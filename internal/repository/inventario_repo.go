package repository

import (
	"context"

	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventarioRepository is the data access contract for the per-event
// ledger. The *Tx methods take a live transaction: the decrement cascade
// in the service layer locks every touched row FOR UPDATE so concurrent
// pedidos serialize per row instead of last-committer-wins.
type InventarioRepository interface {
	// Productos
	CreateProducto(ctx context.Context, row *model.InventarioProductoEvento) error
	FindProducto(ctx context.Context, eventoID, productoID uuid.UUID) (*model.InventarioProductoEvento, error)
	ListProductos(ctx context.Context, eventoID uuid.UUID) ([]model.InventarioProductoEvento, error)
	SaveProducto(ctx context.Context, row *model.InventarioProductoEvento) error
	DeleteProducto(ctx context.Context, eventoID, productoID uuid.UUID) error
	LockProductoTx(tx *gorm.DB, eventoID, productoID uuid.UUID) (*model.InventarioProductoEvento, error)
	SetCantidadProductoTx(tx *gorm.DB, id uuid.UUID, cantidad int) error

	// Insumos
	CreateInsumo(ctx context.Context, row *model.InventarioInsumoEvento) error
	FindInsumo(ctx context.Context, eventoID, insumoID uuid.UUID) (*model.InventarioInsumoEvento, error)
	FindInsumos(ctx context.Context, eventoID uuid.UUID, insumoIDs []uuid.UUID) ([]model.InventarioInsumoEvento, error)
	ListInsumos(ctx context.Context, eventoID uuid.UUID) ([]model.InventarioInsumoEvento, error)
	SaveInsumo(ctx context.Context, row *model.InventarioInsumoEvento) error
	DeleteInsumo(ctx context.Context, eventoID, insumoID uuid.UUID) error
	LockInsumoTx(tx *gorm.DB, eventoID, insumoID uuid.UUID) (*model.InventarioInsumoEvento, error)
	SetCantidadInsumoTx(tx *gorm.DB, id uuid.UUID, cantidad decimal.Decimal) error

	// CountProductosConInsumo counts productos loaded into the evento
	// whose receta consumes the given insumo (guards insumo-row deletion).
	CountProductosConInsumo(ctx context.Context, eventoID, insumoID uuid.UUID) (int64, error)

	// Low-stock sweep across all active eventos (alert cron).
	ListProductosBajoMinimo(ctx context.Context) ([]model.InventarioProductoEvento, error)
	ListInsumosBajoMinimo(ctx context.Context) ([]model.InventarioInsumoEvento, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type inventarioRepo struct{ db *gorm.DB }

func NewInventarioRepository(db *gorm.DB) InventarioRepository { return &inventarioRepo{db: db} }

func (r *inventarioRepo) DB() *gorm.DB { return r.db }

// ── Productos ────────────────────────────────────────────────────────────────

func (r *inventarioRepo) CreateProducto(ctx context.Context, row *model.InventarioProductoEvento) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *inventarioRepo) FindProducto(ctx context.Context, eventoID, productoID uuid.UUID) (*model.InventarioProductoEvento, error) {
	var row model.InventarioProductoEvento
	err := r.db.WithContext(ctx).Preload("Producto").
		Where("evento_id = ? AND producto_id = ?", eventoID, productoID).
		First(&row).Error
	return &row, err
}

func (r *inventarioRepo) ListProductos(ctx context.Context, eventoID uuid.UUID) ([]model.InventarioProductoEvento, error) {
	var rows []model.InventarioProductoEvento
	err := r.db.WithContext(ctx).Preload("Producto").
		Where("evento_id = ?", eventoID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *inventarioRepo) SaveProducto(ctx context.Context, row *model.InventarioProductoEvento) error {
	return r.db.WithContext(ctx).Save(row).Error
}

func (r *inventarioRepo) DeleteProducto(ctx context.Context, eventoID, productoID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("evento_id = ? AND producto_id = ?", eventoID, productoID).
		Delete(&model.InventarioProductoEvento{}).Error
}

func (r *inventarioRepo) LockProductoTx(tx *gorm.DB, eventoID, productoID uuid.UUID) (*model.InventarioProductoEvento, error) {
	var row model.InventarioProductoEvento
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("evento_id = ? AND producto_id = ?", eventoID, productoID).
		First(&row).Error
	return &row, err
}

func (r *inventarioRepo) SetCantidadProductoTx(tx *gorm.DB, id uuid.UUID, cantidad int) error {
	return tx.Model(&model.InventarioProductoEvento{}).Where("id = ?", id).
		Update("cantidad_actual", cantidad).Error
}

// ── Insumos ──────────────────────────────────────────────────────────────────

func (r *inventarioRepo) CreateInsumo(ctx context.Context, row *model.InventarioInsumoEvento) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *inventarioRepo) FindInsumo(ctx context.Context, eventoID, insumoID uuid.UUID) (*model.InventarioInsumoEvento, error) {
	var row model.InventarioInsumoEvento
	err := r.db.WithContext(ctx).
		Where("evento_id = ? AND insumo_id = ?", eventoID, insumoID).
		First(&row).Error
	return &row, err
}

func (r *inventarioRepo) FindInsumos(ctx context.Context, eventoID uuid.UUID, insumoIDs []uuid.UUID) ([]model.InventarioInsumoEvento, error) {
	var rows []model.InventarioInsumoEvento
	err := r.db.WithContext(ctx).
		Where("evento_id = ? AND insumo_id IN ?", eventoID, insumoIDs).
		Find(&rows).Error
	return rows, err
}

func (r *inventarioRepo) ListInsumos(ctx context.Context, eventoID uuid.UUID) ([]model.InventarioInsumoEvento, error) {
	var rows []model.InventarioInsumoEvento
	err := r.db.WithContext(ctx).Preload("Insumo").
		Where("evento_id = ?", eventoID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *inventarioRepo) SaveInsumo(ctx context.Context, row *model.InventarioInsumoEvento) error {
	return r.db.WithContext(ctx).Save(row).Error
}

func (r *inventarioRepo) DeleteInsumo(ctx context.Context, eventoID, insumoID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("evento_id = ? AND insumo_id = ?", eventoID, insumoID).
		Delete(&model.InventarioInsumoEvento{}).Error
}

func (r *inventarioRepo) LockInsumoTx(tx *gorm.DB, eventoID, insumoID uuid.UUID) (*model.InventarioInsumoEvento, error) {
	var row model.InventarioInsumoEvento
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("evento_id = ? AND insumo_id = ?", eventoID, insumoID).
		First(&row).Error
	return &row, err
}

func (r *inventarioRepo) SetCantidadInsumoTx(tx *gorm.DB, id uuid.UUID, cantidad decimal.Decimal) error {
	return tx.Model(&model.InventarioInsumoEvento{}).Where("id = ?", id).
		Update("cantidad_actual", cantidad).Error
}

func (r *inventarioRepo) CountProductosConInsumo(ctx context.Context, eventoID, insumoID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.InventarioProductoEvento{}).
		Joins("JOIN producto_insumos ON producto_insumos.producto_id = inventario_productos_evento.producto_id").
		Where("inventario_productos_evento.evento_id = ? AND producto_insumos.insumo_id = ?", eventoID, insumoID).
		Count(&n).Error
	return n, err
}

// ── Bajo mínimo ──────────────────────────────────────────────────────────────

func (r *inventarioRepo) ListProductosBajoMinimo(ctx context.Context) ([]model.InventarioProductoEvento, error) {
	var rows []model.InventarioProductoEvento
	err := r.db.WithContext(ctx).Preload("Producto").
		Joins("JOIN eventos ON eventos.id = inventario_productos_evento.evento_id AND eventos.estado = 'activo'").
		Where("inventario_productos_evento.activo = true AND cantidad_actual < cantidad_minima").
		Find(&rows).Error
	return rows, err
}

func (r *inventarioRepo) ListInsumosBajoMinimo(ctx context.Context) ([]model.InventarioInsumoEvento, error) {
	var rows []model.InventarioInsumoEvento
	err := r.db.WithContext(ctx).Preload("Insumo").
		Joins("JOIN eventos ON eventos.id = inventario_insumos_evento.evento_id AND eventos.estado = 'activo'").
		Where("inventario_insumos_evento.activo = true AND cantidad_actual < cantidad_minima").
		Find(&rows).Error
	return rows, err
}

package repository

import (
	"context"

	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/dto"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PedidoRepository interface {
	CreateTx(tx *gorm.DB, p *model.Pedido) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error)
	List(ctx context.Context, eventoID uuid.UUID, filter dto.PedidoFilter) ([]model.Pedido, int64, error)
	// ListActivos returns PENDIENTE and EN_PREPARACION pedidos — the
	// kitchen board working set.
	ListActivos(ctx context.Context, eventoID uuid.UUID) ([]model.Pedido, error)

	// NextNumeroTx assigns the per-evento sequential number. Callers must
	// hold the evento row lock (EventoRepository.LockTx) in the same tx.
	NextNumeroTx(tx *gorm.DB, eventoID uuid.UUID) (int, error)

	// CASEstadoTx flips estado only when the current value is one of
	// desde; returns the number of rows changed (0 = lost the race or
	// invalid transition — caller disambiguates by re-reading).
	CASEstadoTx(tx *gorm.DB, id uuid.UUID, desde []string, hacia string) (int64, error)

	// CountItemsPorProducto counts historical order lines referencing a
	// producto within an evento (guards ledger-row deletion).
	CountItemsPorProducto(ctx context.Context, eventoID, productoID uuid.UUID) (int64, error)

	// Estadísticas (read-only rollups)
	TotalPorEstado(ctx context.Context, eventoID uuid.UUID, estado string) (decimal.Decimal, int64, error)
	VentasPorMetodo(ctx context.Context, eventoID uuid.UUID) ([]dto.VentasPorMetodo, error)
	VentasPorCajero(ctx context.Context, eventoID uuid.UUID) ([]dto.VentasPorCajero, error)
	MasVendidos(ctx context.Context, eventoID uuid.UUID, limit int) ([]dto.TopProducto, error)

	DB() *gorm.DB
}

type pedidoRepo struct{ db *gorm.DB }

func NewPedidoRepository(db *gorm.DB) PedidoRepository { return &pedidoRepo{db: db} }

func (r *pedidoRepo) DB() *gorm.DB { return r.db }

func (r *pedidoRepo) CreateTx(tx *gorm.DB, p *model.Pedido) error {
	return tx.Create(p).Error
}

func (r *pedidoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := r.db.WithContext(ctx).Preload("Items").First(&p, id).Error
	return &p, err
}

func (r *pedidoRepo) List(ctx context.Context, eventoID uuid.UUID, filter dto.PedidoFilter) ([]model.Pedido, int64, error) {
	var pedidos []model.Pedido
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Pedido{}).Where("evento_id = ?", eventoID)
	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items").
		Order("numero_pedido DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&pedidos).Error
	return pedidos, total, err
}

func (r *pedidoRepo) ListActivos(ctx context.Context, eventoID uuid.UUID) ([]model.Pedido, error) {
	var pedidos []model.Pedido
	err := r.db.WithContext(ctx).Preload("Items").
		Where("evento_id = ? AND estado IN ?", eventoID,
			[]string{model.PedidoPendiente, model.PedidoEnPreparacion}).
		Order("numero_pedido ASC").
		Find(&pedidos).Error
	return pedidos, err
}

func (r *pedidoRepo) NextNumeroTx(tx *gorm.DB, eventoID uuid.UUID) (int, error) {
	var num int
	err := tx.Raw(
		"SELECT COALESCE(MAX(numero_pedido), 0) + 1 FROM pedidos WHERE evento_id = ?",
		eventoID,
	).Scan(&num).Error
	return num, err
}

func (r *pedidoRepo) CASEstadoTx(tx *gorm.DB, id uuid.UUID, desde []string, hacia string) (int64, error) {
	res := tx.Model(&model.Pedido{}).
		Where("id = ? AND estado IN ?", id, desde).
		Update("estado", hacia)
	return res.RowsAffected, res.Error
}

func (r *pedidoRepo) CountItemsPorProducto(ctx context.Context, eventoID, productoID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.PedidoItem{}).
		Joins("JOIN pedidos ON pedidos.id = pedido_items.pedido_id").
		Where("pedidos.evento_id = ? AND pedido_items.producto_id = ?", eventoID, productoID).
		Count(&n).Error
	return n, err
}

// ── Estadísticas ─────────────────────────────────────────────────────────────

type totalRow struct {
	Total   decimal.Decimal
	Pedidos int64
}

func (r *pedidoRepo) TotalPorEstado(ctx context.Context, eventoID uuid.UUID, estado string) (decimal.Decimal, int64, error) {
	var row totalRow
	err := r.db.WithContext(ctx).Model(&model.Pedido{}).
		Select("COALESCE(SUM(total), 0) AS total, COUNT(*) AS pedidos").
		Where("evento_id = ? AND estado = ?", eventoID, estado).
		Scan(&row).Error
	return row.Total, row.Pedidos, err
}

func (r *pedidoRepo) VentasPorMetodo(ctx context.Context, eventoID uuid.UUID) ([]dto.VentasPorMetodo, error) {
	var rows []dto.VentasPorMetodo
	err := r.db.WithContext(ctx).Model(&model.Pedido{}).
		Select("metodo_pago, COUNT(*) AS pedidos, COALESCE(SUM(total), 0) AS total").
		Where("evento_id = ? AND estado = ?", eventoID, model.PedidoCompletado).
		Group("metodo_pago").
		Order("total DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *pedidoRepo) VentasPorCajero(ctx context.Context, eventoID uuid.UUID) ([]dto.VentasPorCajero, error) {
	var rows []dto.VentasPorCajero
	err := r.db.WithContext(ctx).Model(&model.Pedido{}).
		Select("pedidos.creado_por AS usuario_id, usuarios.nombre, COUNT(*) AS pedidos, COALESCE(SUM(pedidos.total), 0) AS total").
		Joins("JOIN usuarios ON usuarios.id = pedidos.creado_por").
		Where("pedidos.evento_id = ? AND pedidos.estado = ?", eventoID, model.PedidoCompletado).
		Group("pedidos.creado_por, usuarios.nombre").
		Order("total DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *pedidoRepo) MasVendidos(ctx context.Context, eventoID uuid.UUID, limit int) ([]dto.TopProducto, error) {
	var rows []dto.TopProducto
	err := r.db.WithContext(ctx).Model(&model.PedidoItem{}).
		Select("pedido_items.producto_id, pedido_items.nombre_producto AS nombre, SUM(pedido_items.cantidad) AS vendidos, COALESCE(SUM(pedido_items.subtotal), 0) AS ingreso").
		Joins("JOIN pedidos ON pedidos.id = pedido_items.pedido_id").
		Where("pedidos.evento_id = ? AND pedidos.estado = ?", eventoID, model.PedidoCompletado).
		Group("pedido_items.producto_id, pedido_items.nombre_producto").
		Order("vendidos DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

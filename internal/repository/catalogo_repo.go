package repository

import (
	"context"

	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InsumoRepository is the data access contract for the insumo catalog.
type InsumoRepository interface {
	Create(ctx context.Context, i *model.Insumo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Insumo, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Insumo, error)
	List(ctx context.Context, incluirInactivos bool) ([]model.Insumo, error)
	Update(ctx context.Context, i *model.Insumo) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

type insumoRepo struct{ db *gorm.DB }

func NewInsumoRepository(db *gorm.DB) InsumoRepository { return &insumoRepo{db: db} }

func (r *insumoRepo) Create(ctx context.Context, i *model.Insumo) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *insumoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Insumo, error) {
	var i model.Insumo
	err := r.db.WithContext(ctx).First(&i, id).Error
	return &i, err
}

func (r *insumoRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Insumo, error) {
	var insumos []model.Insumo
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&insumos).Error
	return insumos, err
}

func (r *insumoRepo) List(ctx context.Context, incluirInactivos bool) ([]model.Insumo, error) {
	var insumos []model.Insumo
	q := r.db.WithContext(ctx).Order("nombre ASC")
	if !incluirInactivos {
		q = q.Where("activo = true")
	}
	err := q.Find(&insumos).Error
	return insumos, err
}

func (r *insumoRepo) Update(ctx context.Context, i *model.Insumo) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *insumoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Insumo{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *insumoRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Insumo{}).Where("id = ?", id).Update("activo", true).Error
}

// ProductoRepository covers the producto catalog and its recetas.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	// FindByIDConReceta preloads the receta lines with their insumos.
	FindByIDConReceta(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	List(ctx context.Context, incluirInactivos bool) ([]model.Producto, error)
	Update(ctx context.Context, p *model.Producto) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error

	// Receta
	FindReceta(ctx context.Context, productoID uuid.UUID) ([]model.ProductoInsumo, error)
	ReplaceReceta(ctx context.Context, productoID uuid.UUID, lineas []model.ProductoInsumo) error
	CountRecetasPorInsumo(ctx context.Context, insumoID uuid.UUID) (int64, error)
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *productoRepo) FindByIDConReceta(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Preload("Receta.Insumo").First(&p, id).Error
	return &p, err
}

func (r *productoRepo) List(ctx context.Context, incluirInactivos bool) ([]model.Producto, error) {
	var productos []model.Producto
	q := r.db.WithContext(ctx).Preload("Receta").Order("nombre ASC")
	if !incluirInactivos {
		q = q.Where("activo = true")
	}
	err := q.Find(&productos).Error
	return productos, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *productoRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Update("activo", true).Error
}

func (r *productoRepo) FindReceta(ctx context.Context, productoID uuid.UUID) ([]model.ProductoInsumo, error) {
	var lineas []model.ProductoInsumo
	err := r.db.WithContext(ctx).Preload("Insumo").Where("producto_id = ?", productoID).Find(&lineas).Error
	return lineas, err
}

// ReplaceReceta swaps the full receta set atomically: delete then insert
// inside one transaction, so readers never see a half-replaced receta.
func (r *productoRepo) ReplaceReceta(ctx context.Context, productoID uuid.UUID, lineas []model.ProductoInsumo) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("producto_id = ?", productoID).Delete(&model.ProductoInsumo{}).Error; err != nil {
			return err
		}
		if len(lineas) == 0 {
			return nil
		}
		return tx.Create(&lineas).Error
	})
}

func (r *productoRepo) CountRecetasPorInsumo(ctx context.Context, insumoID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.ProductoInsumo{}).Where("insumo_id = ?", insumoID).Count(&n).Error
	return n, err
}

package repository

import (
	"context"

	"github.com/4ndreams/GPS-sub001/internal/dto"
	"github.com/4ndreams/GPS-sub001/internal/model"

	"gorm.io/gorm"
)

// ProductoRepository defines the data access contract for products.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uint) (*model.Producto, error)
	List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error)
	Update(ctx context.Context, p *model.Producto) error
	Delete(ctx context.Context, id uint) error
	AddImagen(ctx context.Context, img *model.Imagen) error

	// DescontarStockTx decrements stock inside a transaction, guarded so the
	// result can never go below zero. Returns gorm.ErrRecordNotFound-style
	// zero RowsAffected when the guard blocks the write.
	DescontarStockTx(tx *gorm.DB, id uint, cantidad int) (int64, error)

	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uint) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).
		Preload("Tipo").Preload("Material").Preload("Relleno").Preload("Imagenes").
		First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	var productos []model.Producto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Producto{})

	if filter.Nombre != "" {
		q = q.Where("nombre ILIKE ?", "%"+filter.Nombre+"%")
	}
	if filter.TipoID != 0 {
		q = q.Where("tipo_id = ?", filter.TipoID)
	}
	if filter.MaterialID != 0 {
		q = q.Where("material_id = ?", filter.MaterialID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Tipo").Preload("Material").Preload("Relleno").Preload("Imagenes").
		Order("nombre ASC").Limit(filter.Limit).Offset(offset).Find(&productos).Error
	return productos, total, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Producto{}, id).Error
}

func (r *productoRepo) AddImagen(ctx context.Context, img *model.Imagen) error {
	return r.db.WithContext(ctx).Create(img).Error
}

// DescontarStockTx applies the non-negative stock invariant at the SQL level:
// the WHERE guard means a concurrent decrement can never drive stock below 0.
func (r *productoRepo) DescontarStockTx(tx *gorm.DB, id uint, cantidad int) (int64, error) {
	res := tx.Model(&model.Producto{}).
		Where("id = ? AND stock >= ?", id, cantidad).
		Update("stock", gorm.Expr("stock - ?", cantidad))
	return res.RowsAffected, res.Error
}

func (r *productoRepo) DB() *gorm.DB { return r.db }

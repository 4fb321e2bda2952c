package repository

import (
	"context"

	"github.com/4ndreams/GPS-sub001/internal/model"

	"gorm.io/gorm"
)

// CotizacionRepository accesses productos_personalizados.
type CotizacionRepository interface {
	Create(ctx context.Context, c *model.ProductoPersonalizado) error
	FindByID(ctx context.Context, id uint) (*model.ProductoPersonalizado, error)
	List(ctx context.Context) ([]model.ProductoPersonalizado, error)
	Update(ctx context.Context, c *model.ProductoPersonalizado) error
}

type cotizacionRepo struct{ db *gorm.DB }

func NewCotizacionRepository(db *gorm.DB) CotizacionRepository { return &cotizacionRepo{db: db} }

func (r *cotizacionRepo) Create(ctx context.Context, c *model.ProductoPersonalizado) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cotizacionRepo) FindByID(ctx context.Context, id uint) (*model.ProductoPersonalizado, error) {
	var c model.ProductoPersonalizado
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cotizacionRepo) List(ctx context.Context) ([]model.ProductoPersonalizado, error) {
	var cs []model.ProductoPersonalizado
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&cs).Error
	return cs, err
}

func (r *cotizacionRepo) Update(ctx context.Context, c *model.ProductoPersonalizado) error {
	return r.db.WithContext(ctx).Save(c).Error
}

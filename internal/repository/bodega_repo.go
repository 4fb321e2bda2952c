package repository

import (
	"context"

	"github.com/4ndreams/GPS-sub001/internal/model"

	"gorm.io/gorm"
)

type BodegaRepository interface {
	Create(ctx context.Context, b *model.Bodega) error
	FindByID(ctx context.Context, id uint) (*model.Bodega, error)
	List(ctx context.Context) ([]model.Bodega, error)
	Update(ctx context.Context, b *model.Bodega) error
}

type bodegaRepo struct{ db *gorm.DB }

func NewBodegaRepository(db *gorm.DB) BodegaRepository { return &bodegaRepo{db: db} }

func (r *bodegaRepo) Create(ctx context.Context, b *model.Bodega) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *bodegaRepo) FindByID(ctx context.Context, id uint) (*model.Bodega, error) {
	var b model.Bodega
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bodegaRepo) List(ctx context.Context) ([]model.Bodega, error) {
	var bs []model.Bodega
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&bs).Error
	return bs, err
}

func (r *bodegaRepo) Update(ctx context.Context, b *model.Bodega) error {
	return r.db.WithContext(ctx).Save(b).Error
}

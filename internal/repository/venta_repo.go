package repository

import (
	"context"

	"github.com/4ndreams/GPS-sub001/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VentaRepository accesses sales, both web checkout and quotation deliveries.
type VentaRepository interface {
	Create(ctx context.Context, v *model.Venta) error
	FindByID(ctx context.Context, id uint) (*model.Venta, error)
	FindByExternalReference(ctx context.Context, ref string) (*model.Venta, error)
	FindByPagoID(ctx context.Context, pagoID string) (*model.Venta, error)
	FindByCotizacionID(ctx context.Context, cotizacionID uint) (*model.Venta, error)
	List(ctx context.Context) ([]model.Venta, error)
	Update(ctx context.Context, v *model.Venta) error

	// Tx variants for the webhook transaction.
	FindByExternalReferenceForUpdate(tx *gorm.DB, ref string) (*model.Venta, error)
	UpdateTx(tx *gorm.DB, v *model.Venta) error

	DB() *gorm.DB
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) Create(ctx context.Context, v *model.Venta) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uint) (*model.Venta, error) {
	var v model.Venta
	if err := r.db.WithContext(ctx).Preload("Producto").First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ventaRepo) FindByExternalReference(ctx context.Context, ref string) (*model.Venta, error) {
	var v model.Venta
	if err := r.db.WithContext(ctx).Where("external_reference = ?", ref).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ventaRepo) FindByPagoID(ctx context.Context, pagoID string) (*model.Venta, error) {
	var v model.Venta
	if err := r.db.WithContext(ctx).Where("pago_id = ?", pagoID).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ventaRepo) FindByCotizacionID(ctx context.Context, cotizacionID uint) (*model.Venta, error) {
	var v model.Venta
	if err := r.db.WithContext(ctx).Where("producto_personalizado_id = ?", cotizacionID).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ventaRepo) List(ctx context.Context) ([]model.Venta, error) {
	var vs []model.Venta
	err := r.db.WithContext(ctx).Preload("Producto").Order("created_at DESC").Find(&vs).Error
	return vs, err
}

func (r *ventaRepo) Update(ctx context.Context, v *model.Venta) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *ventaRepo) FindByExternalReferenceForUpdate(tx *gorm.DB, ref string) (*model.Venta, error) {
	var v model.Venta
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("external_reference = ?", ref).First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ventaRepo) UpdateTx(tx *gorm.DB, v *model.Venta) error {
	return tx.Save(v).Error
}

func (r *ventaRepo) DB() *gorm.DB { return r.db }

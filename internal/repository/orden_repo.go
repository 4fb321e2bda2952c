package repository

import (
	"context"
	"strings"

	"github.com/4ndreams/GPS-sub001/internal/dto"
	"github.com/4ndreams/GPS-sub001/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrdenRepository defines the data access contract for órdenes.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type OrdenRepository interface {
	Create(ctx context.Context, o *model.Orden) error
	FindByID(ctx context.Context, id uint) (*model.Orden, error)
	List(ctx context.Context, filter dto.OrdenFilter) ([]model.Orden, error)
	Update(ctx context.Context, o *model.Orden) error
	Delete(ctx context.Context, id uint) error
	CountByEstado(ctx context.Context) (map[string]int64, error)

	// Used inside dispatch transactions — callers must pass the tx instance.
	// FindByIDForUpdate takes a row lock so two concurrent dispatches cannot
	// both observe the same order as Fabricada.
	FindByIDForUpdate(tx *gorm.DB, id uint) (*model.Orden, error)
	UpdateTx(tx *gorm.DB, o *model.Orden) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type ordenRepo struct{ db *gorm.DB }

func NewOrdenRepository(db *gorm.DB) OrdenRepository { return &ordenRepo{db: db} }

func (r *ordenRepo) Create(ctx context.Context, o *model.Orden) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *ordenRepo) FindByID(ctx context.Context, id uint) (*model.Orden, error) {
	var o model.Orden
	err := r.db.WithContext(ctx).
		Preload("Producto").Preload("Usuario").Preload("Bodega").
		First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// List returns all matching orders with relations. No pagination: the
// dashboards consume the full set.
func (r *ordenRepo) List(ctx context.Context, filter dto.OrdenFilter) ([]model.Orden, error) {
	q := r.db.WithContext(ctx).Model(&model.Orden{}).
		Preload("Producto").Preload("Usuario").Preload("Bodega")

	if filter.Estados != "" {
		estados := strings.Split(filter.Estados, ",")
		for i := range estados {
			estados[i] = strings.TrimSpace(estados[i])
		}
		q = q.Where("estado IN ?", estados)
	}
	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
	}

	var ordenes []model.Orden
	err := q.Order("created_at DESC").Find(&ordenes).Error
	return ordenes, err
}

func (r *ordenRepo) Update(ctx context.Context, o *model.Orden) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *ordenRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Orden{}, id).Error
}

func (r *ordenRepo) CountByEstado(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Estado string
		N      int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.Orden{}).
		Select("estado, count(*) as n").Group("estado").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Estado] = rw.N
	}
	return counts, nil
}

func (r *ordenRepo) FindByIDForUpdate(tx *gorm.DB, id uint) (*model.Orden, error) {
	var o model.Orden
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *ordenRepo) UpdateTx(tx *gorm.DB, o *model.Orden) error {
	return tx.Save(o).Error
}

func (r *ordenRepo) DB() *gorm.DB { return r.db }

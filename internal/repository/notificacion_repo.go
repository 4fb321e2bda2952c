package repository

import (
	"context"

	"github.com/4ndreams/GPS-sub001/internal/model"

	"gorm.io/gorm"
)

// NotificacionRepository persists the notification/alert log. The table
// replaces the old in-process array: rows survive restarts and are shared by
// every instance behind the load balancer.
type NotificacionRepository interface {
	Create(ctx context.Context, n *model.Notificacion) error
	FindByID(ctx context.Context, id uint) (*model.Notificacion, error)
	List(ctx context.Context, limit int, soloNoLeidas bool) ([]model.Notificacion, error)
	ListAlertasActivas(ctx context.Context) ([]model.Notificacion, error)
	Update(ctx context.Context, n *model.Notificacion) error

	// PurgeResolved deletes read+resolved rows beyond the retention cap,
	// oldest first. Returns how many rows were removed.
	PurgeResolved(ctx context.Context, keep int) (int64, error)
}

type notificacionRepo struct{ db *gorm.DB }

func NewNotificacionRepository(db *gorm.DB) NotificacionRepository {
	return &notificacionRepo{db: db}
}

func (r *notificacionRepo) Create(ctx context.Context, n *model.Notificacion) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificacionRepo) FindByID(ctx context.Context, id uint) (*model.Notificacion, error) {
	var n model.Notificacion
	if err := r.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// List returns newest-first, like the old in-memory log did.
func (r *notificacionRepo) List(ctx context.Context, limit int, soloNoLeidas bool) ([]model.Notificacion, error) {
	q := r.db.WithContext(ctx).Model(&model.Notificacion{}).Order("created_at DESC").Limit(limit)
	if soloNoLeidas {
		q = q.Where("leida = false")
	}
	var ns []model.Notificacion
	err := q.Find(&ns).Error
	return ns, err
}

func (r *notificacionRepo) ListAlertasActivas(ctx context.Context) ([]model.Notificacion, error) {
	var ns []model.Notificacion
	err := r.db.WithContext(ctx).
		Where("tipo IN ? AND resuelta = false",
			[]string{model.TipoAlertaFaltante, model.TipoDefectoCalidad, model.TipoRecepcionConProblemas}).
		Order("created_at DESC").
		Find(&ns).Error
	return ns, err
}

func (r *notificacionRepo) Update(ctx context.Context, n *model.Notificacion) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *notificacionRepo) PurgeResolved(ctx context.Context, keep int) (int64, error) {
	// Unread or unresolved rows are never purged.
	sub := r.db.Model(&model.Notificacion{}).
		Select("id").
		Where("leida = true AND resuelta = true").
		Order("created_at DESC").
		Limit(keep)
	res := r.db.WithContext(ctx).
		Where("leida = true AND resuelta = true AND id NOT IN (?)", sub).
		Delete(&model.Notificacion{})
	return res.RowsAffected, res.Error
}

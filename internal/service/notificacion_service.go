package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/4ndreams/GPS-sub001/internal/apierror"
	"github.com/4ndreams/GPS-sub001/internal/dto"
	"github.com/4ndreams/GPS-sub001/internal/model"
	"github.com/4ndreams/GPS-sub001/internal/realtime"
	"github.com/4ndreams/GPS-sub001/internal/repository"
	"github.com/4ndreams/GPS-sub001/internal/worker"

	"github.com/rs/zerolog/log"
)

// NotificacionService mantiene el log durable de notificaciones y las
// alertas activas que requieren resolución manual.
type NotificacionService interface {
	Crear(ctx context.Context, req dto.CrearNotificacionRequest) (*dto.NotificacionResponse, error)
	Listar(ctx context.Context, filter dto.NotificacionFilter) ([]dto.NotificacionResponse, error)
	AlertasActivas(ctx context.Context) ([]dto.NotificacionResponse, error)
	MarcarLeida(ctx context.Context, id uint) (*dto.NotificacionResponse, error)
	Resolver(ctx context.Context, id uint, resolucion string) (*dto.NotificacionResponse, error)

	// Constructores de alertas usados por el flujo de recepción en tienda.
	NotificarProductosFaltantes(ctx context.Context, ordenID, tiendaID uint, faltantes []string) error
	NotificarDefectosCalidad(ctx context.Context, ordenID, tiendaID uint, defectuosos []string) error
	NotificarRecepcionExitosa(ctx context.Context, ordenID, tiendaID uint) error
}

type notificacionService struct {
	repo       repository.NotificacionRepository
	dispatcher *worker.Dispatcher
	publisher  realtime.Publisher
	adminEmail string
}

func NewNotificacionService(repo repository.NotificacionRepository, dispatcher *worker.Dispatcher, publisher realtime.Publisher, adminEmail string) NotificacionService {
	return &notificacionService{
		repo:       repo,
		dispatcher: dispatcher,
		publisher:  publisher,
		adminEmail: adminEmail,
	}
}

func (s *notificacionService) Crear(ctx context.Context, req dto.CrearNotificacionRequest) (*dto.NotificacionResponse, error) {
	n := &model.Notificacion{
		Tipo:                 req.Tipo,
		Mensaje:              req.Mensaje,
		OrdenID:              req.OrdenID,
		TiendaID:             req.TiendaID,
		ProductosFaltantes:   req.ProductosFaltantes,
		ProductosDefectuosos: req.ProductosDefectuosos,
		Prioridad:            req.Prioridad,
	}
	if n.Prioridad == "" {
		n.Prioridad = "media"
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, apierror.Internal(err)
	}

	// Correo a administración para los tipos críticos — best-effort.
	if n.EsCritica() && s.dispatcher != nil {
		payload := worker.EmailJobPayload{
			ToEmail: s.adminEmail,
			Subject: fmt.Sprintf("[Alerta] %s", n.Tipo),
			Body:    n.Mensaje,
		}
		if err := s.dispatcher.EnqueueEmail(ctx, payload); err != nil {
			log.Error().Err(err).Uint("notificacion_id", n.ID).Msg("notificacion: email enqueue failed")
		}
	}

	resp := notificacionToResponse(n)
	if s.publisher != nil {
		s.publisher.NuevaNotificacion(ctx, resp)
	}
	return resp, nil
}

func (s *notificacionService) Listar(ctx context.Context, filter dto.NotificacionFilter) ([]dto.NotificacionResponse, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	ns, err := s.repo.List(ctx, limit, filter.SoloNoLeidas)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	return notificacionesToResponse(ns), nil
}

func (s *notificacionService) AlertasActivas(ctx context.Context) ([]dto.NotificacionResponse, error) {
	ns, err := s.repo.ListAlertasActivas(ctx)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	return notificacionesToResponse(ns), nil
}

// MarcarLeida is idempotent: marking an already-read notification succeeds
// and leaves leida=true.
func (s *notificacionService) MarcarLeida(ctx context.Context, id uint) (*dto.NotificacionResponse, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Notificación no encontrada")
	}
	if !n.Leida {
		n.Leida = true
		if err := s.repo.Update(ctx, n); err != nil {
			return nil, apierror.Internal(err)
		}
	}
	return notificacionToResponse(n), nil
}

func (s *notificacionService) Resolver(ctx context.Context, id uint, resolucion string) (*dto.NotificacionResponse, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Alerta no encontrada")
	}
	if !n.EsAlerta() {
		return nil, apierror.Conflict("La notificación no es una alerta activa")
	}
	if n.Resuelta {
		return nil, apierror.Conflict("La alerta ya fue resuelta")
	}
	n.Resuelta = true
	n.Leida = true
	n.Resolucion = &resolucion
	if err := s.repo.Update(ctx, n); err != nil {
		return nil, apierror.Internal(err)
	}
	return notificacionToResponse(n), nil
}

// ── Constructores de alertas ─────────────────────────────────────────────────

func (s *notificacionService) NotificarProductosFaltantes(ctx context.Context, ordenID, tiendaID uint, faltantes []string) error {
	_, err := s.Crear(ctx, dto.CrearNotificacionRequest{
		Tipo:               model.TipoAlertaFaltante,
		Mensaje:            fmt.Sprintf("Orden #%d recibida con productos faltantes: %s", ordenID, strings.Join(faltantes, ", ")),
		OrdenID:            &ordenID,
		TiendaID:           &tiendaID,
		ProductosFaltantes: faltantes,
		Prioridad:          model.PrioridadCritica,
	})
	return err
}

func (s *notificacionService) NotificarDefectosCalidad(ctx context.Context, ordenID, tiendaID uint, defectuosos []string) error {
	_, err := s.Crear(ctx, dto.CrearNotificacionRequest{
		Tipo:                 model.TipoDefectoCalidad,
		Mensaje:              fmt.Sprintf("Orden #%d recibida con defectos de calidad: %s", ordenID, strings.Join(defectuosos, ", ")),
		OrdenID:              &ordenID,
		TiendaID:             &tiendaID,
		ProductosDefectuosos: defectuosos,
		Prioridad:            model.PrioridadCritica,
	})
	return err
}

func (s *notificacionService) NotificarRecepcionExitosa(ctx context.Context, ordenID, tiendaID uint) error {
	_, err := s.Crear(ctx, dto.CrearNotificacionRequest{
		Tipo:     model.TipoRecepcionExitosa,
		Mensaje:  fmt.Sprintf("Orden #%d recibida conforme en tienda", ordenID),
		OrdenID:  &ordenID,
		TiendaID: &tiendaID,
	})
	return err
}

func notificacionToResponse(n *model.Notificacion) *dto.NotificacionResponse {
	return &dto.NotificacionResponse{
		ID:                   n.ID,
		Tipo:                 n.Tipo,
		Mensaje:              n.Mensaje,
		OrdenID:              n.OrdenID,
		TiendaID:             n.TiendaID,
		ProductosFaltantes:   n.ProductosFaltantes,
		ProductosDefectuosos: n.ProductosDefectuosos,
		Prioridad:            n.Prioridad,
		Leida:                n.Leida,
		Resuelta:             n.Resuelta,
		Resolucion:           n.Resolucion,
		FechaCreacion:        n.CreatedAt.Format(time.RFC3339),
	}
}

func notificacionesToResponse(ns []model.Notificacion) []dto.NotificacionResponse {
	resp := make([]dto.NotificacionResponse, 0, len(ns))
	for i := range ns {
		resp = append(resp, *notificacionToResponse(&ns[i]))
	}
	return resp
}

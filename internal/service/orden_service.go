package service

import (
	"context"
	"fmt"
	"time"

	"github.com/4ndreams/GPS-sub001/internal/apierror"
	"github.com/4ndreams/GPS-sub001/internal/dto"
	"github.com/4ndreams/GPS-sub001/internal/model"
	"github.com/4ndreams/GPS-sub001/internal/realtime"
	"github.com/4ndreams/GPS-sub001/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// OrdenService maneja el ciclo de vida de las órdenes fábrica → tienda.
type OrdenService interface {
	Listar(ctx context.Context, filter dto.OrdenFilter) ([]dto.OrdenResponse, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.OrdenResponse, error)
	Crear(ctx context.Context, req dto.CrearOrdenRequest) (*dto.OrdenResponse, error)
	Actualizar(ctx context.Context, id uint, req dto.ActualizarOrdenRequest) (*dto.OrdenResponse, error)
	MarcarCompletada(ctx context.Context, id uint) (*dto.OrdenResponse, error)
	Cancelar(ctx context.Context, id uint) (*dto.OrdenResponse, error)
	ConfirmarRecepcion(ctx context.Context, id uint, req dto.ConfirmarRecepcionRequest) (*dto.OrdenResponse, error)
	Eliminar(ctx context.Context, id uint) error
	Estadisticas(ctx context.Context) (*dto.EstadisticasOrdenes, error)
}

type ordenService struct {
	repo      repository.OrdenRepository
	notifs    NotificacionService
	publisher realtime.Publisher
}

func NewOrdenService(repo repository.OrdenRepository, notifs NotificacionService, publisher realtime.Publisher) OrdenService {
	return &ordenService{repo: repo, notifs: notifs, publisher: publisher}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *ordenService) Listar(ctx context.Context, filter dto.OrdenFilter) ([]dto.OrdenResponse, error) {
	ordenes, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	resp := make([]dto.OrdenResponse, 0, len(ordenes))
	for i := range ordenes {
		resp = append(resp, *ordenToResponse(&ordenes[i]))
	}
	return resp, nil
}

func (s *ordenService) ObtenerPorID(ctx context.Context, id uint) (*dto.OrdenResponse, error) {
	orden, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Orden no encontrada")
	}
	return ordenToResponse(orden), nil
}

func (s *ordenService) Crear(ctx context.Context, req dto.CrearOrdenRequest) (*dto.OrdenResponse, error) {
	orden := &model.Orden{
		Cantidad:      req.Cantidad,
		Origen:        req.Origen,
		Destino:       req.Destino,
		Estado:        model.EstadoPendiente,
		Prioridad:     req.Prioridad,
		Tipo:          req.Tipo,
		Observaciones: req.Observaciones,
		ProductoID:    req.ProductoID,
		UsuarioID:     req.UsuarioID,
		BodegaID:      req.BodegaID,
	}
	if orden.Prioridad == "" {
		orden.Prioridad = "Media"
	}
	if orden.Tipo == "" {
		orden.Tipo = "normal"
	}

	// Referenced producto/usuario/bodega are not pre-checked: an FK
	// violation surfaces as a generic internal error.
	if err := s.repo.Create(ctx, orden); err != nil {
		return nil, apierror.Internal(err)
	}

	s.afterChange(ctx, orden, fmt.Sprintf("Nueva orden #%d creada (%s → %s)", orden.ID, orden.Origen, orden.Destino), model.TipoOrdenActualizada)
	return ordenToResponse(orden), nil
}

// Actualizar is a partial update: fields absent from the request keep their
// current values. Estado is written as-is — the legal sequence is not
// enforced here.
func (s *ordenService) Actualizar(ctx context.Context, id uint, req dto.ActualizarOrdenRequest) (*dto.OrdenResponse, error) {
	orden, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Orden no encontrada")
	}

	if req.Cantidad != nil {
		orden.Cantidad = *req.Cantidad
	}
	if req.Origen != nil {
		orden.Origen = *req.Origen
	}
	if req.Destino != nil {
		orden.Destino = *req.Destino
	}
	if req.Estado != nil {
		orden.Estado = *req.Estado
	}
	if req.Prioridad != nil {
		orden.Prioridad = *req.Prioridad
	}
	if req.Transportista != nil {
		orden.Transportista = req.Transportista
	}
	if req.Observaciones != nil {
		orden.Observaciones = req.Observaciones
	}
	if req.FechaEntrega != nil {
		orden.FechaEntrega = req.FechaEntrega
	}
	orden.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, orden); err != nil {
		return nil, apierror.Internal(err)
	}

	s.afterChange(ctx, orden, fmt.Sprintf("Orden #%d actualizada (estado: %s)", orden.ID, orden.Estado), model.TipoOrdenActualizada)
	return ordenToResponse(orden), nil
}

// MarcarCompletada stamps the fixed post-production state. No guard on the
// source state: fábrica uses this from any point of the flow.
func (s *ordenService) MarcarCompletada(ctx context.Context, id uint) (*dto.OrdenResponse, error) {
	orden, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Orden no encontrada")
	}
	orden.Estado = model.EstadoFabricada
	orden.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, orden); err != nil {
		return nil, apierror.Internal(err)
	}

	s.afterChange(ctx, orden, fmt.Sprintf("Orden #%d fabricada y lista para despacho", orden.ID), model.TipoOrdenActualizada)
	return ordenToResponse(orden), nil
}

// Cancelar also lacks a source-state guard: cancelling an already received
// order succeeds.
func (s *ordenService) Cancelar(ctx context.Context, id uint) (*dto.OrdenResponse, error) {
	orden, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Orden no encontrada")
	}
	orden.Estado = model.EstadoCancelado
	orden.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, orden); err != nil {
		return nil, apierror.Internal(err)
	}

	s.afterChange(ctx, orden, fmt.Sprintf("Orden #%d cancelada", orden.ID), model.TipoOrdenCancelada)
	return ordenToResponse(orden), nil
}

// ConfirmarRecepcion closes the delivery from the store side. Any reported
// missing or defective product moves the order to "Recibido con problemas"
// and raises the matching alerts; a clean receipt lands on "Recibido".
func (s *ordenService) ConfirmarRecepcion(ctx context.Context, id uint, req dto.ConfirmarRecepcionRequest) (*dto.OrdenResponse, error) {
	orden, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Orden no encontrada")
	}
	if orden.Estado != model.EstadoEnTransito {
		return nil, apierror.Conflict(fmt.Sprintf(
			"La orden #%d está en estado %q y no puede recepcionarse", orden.ID, orden.Estado))
	}

	conProblemas := len(req.ProductosFaltantes) > 0 || len(req.ProductosDefectuosos) > 0
	if conProblemas {
		orden.Estado = model.EstadoRecibidoConProblemas
	} else {
		orden.Estado = model.EstadoRecibido
	}
	now := time.Now()
	orden.FechaEntrega = &now
	orden.UpdatedAt = now

	if err := s.repo.Update(ctx, orden); err != nil {
		return nil, apierror.Internal(err)
	}

	if s.notifs != nil {
		tiendaID := orden.BodegaID
		if len(req.ProductosFaltantes) > 0 {
			if err := s.notifs.NotificarProductosFaltantes(ctx, orden.ID, tiendaID, req.ProductosFaltantes); err != nil {
				log.Error().Err(err).Uint("orden_id", orden.ID).Msg("orden: alerta de faltantes failed")
			}
		}
		if len(req.ProductosDefectuosos) > 0 {
			if err := s.notifs.NotificarDefectosCalidad(ctx, orden.ID, tiendaID, req.ProductosDefectuosos); err != nil {
				log.Error().Err(err).Uint("orden_id", orden.ID).Msg("orden: alerta de defectos failed")
			}
		}
		if !conProblemas {
			if err := s.notifs.NotificarRecepcionExitosa(ctx, orden.ID, tiendaID); err != nil {
				log.Error().Err(err).Uint("orden_id", orden.ID).Msg("orden: aviso de recepción failed")
			}
		}
	}
	if s.publisher != nil {
		s.publisher.OrdenActualizada(ctx, ordenToResponse(orden))
	}
	return ordenToResponse(orden), nil
}

func (s *ordenService) Eliminar(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("Orden no encontrada")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apierror.Internal(err)
	}
	return nil
}

func (s *ordenService) Estadisticas(ctx context.Context) (*dto.EstadisticasOrdenes, error) {
	counts, err := s.repo.CountByEstado(ctx)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	var total int64
	for _, n := range counts {
		total += n
	}
	return &dto.EstadisticasOrdenes{Total: total, PorEstado: counts}, nil
}

// afterChange runs the fire-and-forget side effects shared by every mutating
// operation: append a notification and push the realtime events. Failures
// are logged and never surfaced to the caller.
func (s *ordenService) afterChange(ctx context.Context, orden *model.Orden, mensaje, tipo string) {
	if s.notifs != nil {
		if _, err := s.notifs.Crear(ctx, dto.CrearNotificacionRequest{
			Tipo:    tipo,
			Mensaje: mensaje,
			OrdenID: &orden.ID,
		}); err != nil {
			log.Error().Err(err).Uint("orden_id", orden.ID).Msg("orden: notificacion side-effect failed")
		}
	}
	if s.publisher != nil {
		s.publisher.OrdenActualizada(ctx, ordenToResponse(orden))
		if counts, err := s.repo.CountByEstado(ctx); err == nil {
			var total int64
			for _, n := range counts {
				total += n
			}
			s.publisher.EstadisticasActualizadas(ctx, dto.EstadisticasOrdenes{Total: total, PorEstado: counts})
		}
	}
}

func ordenToResponse(o *model.Orden) *dto.OrdenResponse {
	resp := &dto.OrdenResponse{
		ID:            o.ID,
		Cantidad:      o.Cantidad,
		Origen:        o.Origen,
		Destino:       o.Destino,
		FechaEnvio:    o.FechaEnvio,
		FechaEntrega:  o.FechaEntrega,
		Estado:        o.Estado,
		Prioridad:     o.Prioridad,
		Tipo:          o.Tipo,
		Transportista: o.Transportista,
		Observaciones: o.Observaciones,
		UsuarioID:     o.UsuarioID,
		BodegaID:      o.BodegaID,
		CreatedAt:     o.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     o.UpdatedAt.Format(time.RFC3339),
	}
	if o.Producto != nil {
		resp.Producto = &dto.ProductoResumen{
			ID:     o.Producto.ID,
			Nombre: o.Producto.Nombre,
			Precio: o.Producto.Precio,
		}
	}
	return resp
}

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

// DespachoService agrupa órdenes Fabricadas en un despacho bajo un mismo
// transportista. El despacho no se persiste: es un agregado efímero que
// existe sólo en la respuesta.
type DespachoService interface {
	CrearDespacho(ctx context.Context, req dto.CrearDespachoRequest) (*dto.DespachoResponse, error)
}

type despachoService struct {
	ordenes   repository.OrdenRepository
	notifs    NotificacionService
	publisher realtime.Publisher
}

func NewDespachoService(ordenes repository.OrdenRepository, notifs NotificacionService, publisher realtime.Publisher) DespachoService {
	return &despachoService{ordenes: ordenes, notifs: notifs, publisher: publisher}
}

// CrearDespacho runs in one transaction with row locks, in two phases:
// first every order is loaded FOR UPDATE and validated, then all of them are
// written. A missing order or one outside "Fabricada" aborts the whole batch
// with nothing mutated — no mixed-state batches.
func (s *despachoService) CrearDespacho(ctx context.Context, req dto.CrearDespachoRequest) (*dto.DespachoResponse, error) {
	now := time.Now()
	var despachadas []model.Orden

	txErr := runTx(ctx, s.ordenes.DB(), func(tx *gorm.DB) error {
		// Fase 1: lock + validación de todo el lote.
		lote := make([]*model.Orden, 0, len(req.OrdenesIDs))
		for _, id := range req.OrdenesIDs {
			orden, err := s.ordenes.FindByIDForUpdate(tx, id)
			if err != nil {
				return apierror.NotFound(fmt.Sprintf("Orden #%d no encontrada", id))
			}
			if orden.Estado != model.EstadoFabricada {
				return apierror.Conflict(fmt.Sprintf(
					"La orden #%d está en estado %q y no puede despacharse (se requiere %q)",
					orden.ID, orden.Estado, model.EstadoFabricada))
			}
			lote = append(lote, orden)
		}

		// Fase 2: transición de todo el lote.
		for _, orden := range lote {
			orden.Estado = model.EstadoEnTransito
			orden.Transportista = &req.Transportista
			orden.Observaciones = req.Observaciones
			fechaEnvio := now
			orden.FechaEnvio = &fechaEnvio
			orden.UpdatedAt = now
			if err := s.ordenes.UpdateTx(tx, orden); err != nil {
				return apierror.Internal(err)
			}
			despachadas = append(despachadas, *orden)
		}
		return nil
	})
	if txErr != nil {
		return nil, apierror.From(txErr)
	}

	// Side effects sólo después del commit.
	for i := range despachadas {
		orden := &despachadas[i]
		if s.notifs != nil {
			if _, err := s.notifs.Crear(ctx, dto.CrearNotificacionRequest{
				Tipo:    model.TipoOrdenActualizada,
				Mensaje: fmt.Sprintf("Orden #%d en tránsito con %s", orden.ID, req.Transportista),
				OrdenID: &orden.ID,
			}); err != nil {
				log.Error().Err(err).Uint("orden_id", orden.ID).Msg("despacho: notificacion side-effect failed")
			}
		}
		if s.publisher != nil {
			s.publisher.OrdenActualizada(ctx, ordenToResponse(orden))
		}
	}

	resp := &dto.DespachoResponse{
		ID:            now.UnixMilli(),
		Transportista: req.Transportista,
		Observaciones: req.Observaciones,
		FechaCreacion: now.UTC().Format(time.RFC3339),
		TotalOrdenes:  len(despachadas),
	}
	for i := range despachadas {
		resp.Ordenes = append(resp.Ordenes, *ordenToResponse(&despachadas[i]))
	}
	return resp, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/4ndreams/GPS-sub001/internal/apierror"
	"github.com/4ndreams/GPS-sub001/internal/dto"
	"github.com/4ndreams/GPS-sub001/internal/infra"
	"github.com/4ndreams/GPS-sub001/internal/model"
	"github.com/4ndreams/GPS-sub001/internal/repository"
	"github.com/4ndreams/GPS-sub001/internal/worker"

	"github.com/rs/zerolog/log"
)

// CotizacionService maneja las solicitudes de puertas a medida:
// Solicitud Recibida → En Proceso → Lista para retirar →
// Producto Entregado | Cancelada.
type CotizacionService interface {
	Crear(ctx context.Context, req dto.CrearCotizacionRequest) (*dto.CotizacionResponse, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.CotizacionResponse, error)
	Listar(ctx context.Context) ([]dto.CotizacionResponse, error)
	Actualizar(ctx context.Context, id uint, req dto.ActualizarCotizacionRequest) (*dto.CotizacionResponse, error)
	CambiarEstado(ctx context.Context, id uint, estado string) (*dto.CotizacionResponse, error)
}

type cotizacionService struct {
	repo       repository.CotizacionRepository
	ventas     repository.VentaRepository
	dispatcher *worker.Dispatcher
	pdfDir     string
}

func NewCotizacionService(repo repository.CotizacionRepository, ventas repository.VentaRepository, dispatcher *worker.Dispatcher, pdfDir string) CotizacionService {
	return &cotizacionService{repo: repo, ventas: ventas, dispatcher: dispatcher, pdfDir: pdfDir}
}

func (s *cotizacionService) Crear(ctx context.Context, req dto.CrearCotizacionRequest) (*dto.CotizacionResponse, error) {
	c := &model.ProductoPersonalizado{
		Medidas:  req.Medidas,
		Material: req.Material,
		Relleno:  req.Relleno,
		Estado:   model.CotizacionSolicitudRecibida,
		Nombre:   req.Nombre,
		Correo:   req.Correo,
		Telefono: req.Telefono,
		Mensaje:  req.Mensaje,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, apierror.Internal(err)
	}
	return cotizacionToResponse(c), nil
}

func (s *cotizacionService) ObtenerPorID(ctx context.Context, id uint) (*dto.CotizacionResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Cotización no encontrada")
	}
	return cotizacionToResponse(c), nil
}

func (s *cotizacionService) Listar(ctx context.Context) ([]dto.CotizacionResponse, error) {
	cs, err := s.repo.List(ctx)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	resp := make([]dto.CotizacionResponse, 0, len(cs))
	for i := range cs {
		resp = append(resp, *cotizacionToResponse(&cs[i]))
	}
	return resp, nil
}

// Actualizar is where fábrica sets the quoted price. No precio guard here:
// the guard applies only to estado changes.
func (s *cotizacionService) Actualizar(ctx context.Context, id uint, req dto.ActualizarCotizacionRequest) (*dto.CotizacionResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Cotización no encontrada")
	}
	if req.Medidas != nil {
		c.Medidas = *req.Medidas
	}
	if req.Material != nil {
		c.Material = *req.Material
	}
	if req.Relleno != nil {
		c.Relleno = *req.Relleno
	}
	if req.Precio != nil {
		c.Precio = req.Precio
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, apierror.Internal(err)
	}
	return cotizacionToResponse(c), nil
}

// CambiarEstado requires the quotation to be priced before any transition.
// Reaching "Producto Entregado" synthesizes the sale if one does not exist
// yet for this quotation (explicit FK lookup) and mails a summary.
func (s *cotizacionService) CambiarEstado(ctx context.Context, id uint, estado string) (*dto.CotizacionResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Cotización no encontrada")
	}
	if c.Precio == nil || c.Precio.IsZero() {
		return nil, apierror.Validation("No se le ha ingresado un precio a la cotización.")
	}

	c.Estado = estado
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, apierror.Internal(err)
	}

	if estado == model.CotizacionProductoEntregado {
		s.registrarVentaEntrega(ctx, c)
	}
	return cotizacionToResponse(c), nil
}

// registrarVentaEntrega persists the sale for a delivered quotation exactly
// once. Failures are logged: the estado change already committed and the
// delivery must not bounce because bookkeeping failed.
func (s *cotizacionService) registrarVentaEntrega(ctx context.Context, c *model.ProductoPersonalizado) {
	if _, err := s.ventas.FindByCotizacionID(ctx, c.ID); err == nil {
		return // venta ya registrada
	}

	informacion := fmt.Sprintf("Puerta a medida %s, %s — %s", c.Medidas, c.Material, c.Nombre)
	// Truncate on runes: the column holds 150 characters and the format
	// string contains multibyte text, so a byte slice could split a rune.
	if r := []rune(informacion); len(r) > 150 {
		informacion = string(r[:150])
	}
	venta := &model.Venta{
		Informacion:             informacion,
		Total:                   *c.Precio,
		Estado:                  model.VentaEntregada,
		Cantidad:                1,
		ProductoPersonalizadoID: &c.ID,
	}
	if err := s.ventas.Create(ctx, venta); err != nil {
		log.Error().Err(err).Uint("cotizacion_id", c.ID).Msg("cotizacion: failed to persist venta")
		return
	}

	var comprobante string
	if s.pdfDir != "" {
		path, err := infra.GenerarComprobantePDF(venta, s.pdfDir)
		if err != nil {
			log.Error().Err(err).Uint("venta_id", venta.ID).Msg("cotizacion: comprobante PDF no generado")
		} else {
			comprobante = path
		}
	}

	if s.dispatcher != nil {
		payload := worker.EmailJobPayload{
			ToEmail: c.Correo,
			Subject: "Resumen de su compra",
			Body: fmt.Sprintf("Su puerta a medida (%s, %s) fue entregada. Total: $%s",
				c.Medidas, c.Material, c.Precio.StringFixed(0)),
			AdjuntoPath: comprobante,
		}
		if err := s.dispatcher.EnqueueEmail(ctx, payload); err != nil {
			log.Error().Err(err).Uint("cotizacion_id", c.ID).Msg("cotizacion: email enqueue failed")
		}
	}
}

func cotizacionToResponse(c *model.ProductoPersonalizado) *dto.CotizacionResponse {
	return &dto.CotizacionResponse{
		ID:        c.ID,
		Medidas:   c.Medidas,
		Material:  c.Material,
		Relleno:   c.Relleno,
		Estado:    c.Estado,
		Precio:    c.Precio,
		Nombre:    c.Nombre,
		Correo:    c.Correo,
		Telefono:  c.Telefono,
		Mensaje:   c.Mensaje,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}

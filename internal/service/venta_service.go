package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/4ndreams/GPS-sub001/internal/apierror"
	"github.com/4ndreams/GPS-sub001/internal/dto"
	"github.com/4ndreams/GPS-sub001/internal/infra"
	"github.com/4ndreams/GPS-sub001/internal/model"
	"github.com/4ndreams/GPS-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VentaService maneja el checkout web y el webhook del gateway de pagos.
type VentaService interface {
	CrearOrdenCompra(ctx context.Context, req dto.CrearOrdenCompraRequest) (*dto.OrdenCompraResponse, error)
	ProcesarWebhook(ctx context.Context, req dto.WebhookRequest) error
	Listar(ctx context.Context) ([]dto.VentaResponse, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.VentaResponse, error)
}

type ventaService struct {
	ventas    repository.VentaRepository
	productos repository.ProductoRepository
	gateway   infra.PagoGateway
	cb        *infra.CircuitBreaker
	pdfDir    string
}

func NewVentaService(ventas repository.VentaRepository, productos repository.ProductoRepository, gateway infra.PagoGateway, cb *infra.CircuitBreaker, pdfDir string) VentaService {
	return &ventaService{ventas: ventas, productos: productos, gateway: gateway, cb: cb, pdfDir: pdfDir}
}

// CrearOrdenCompra persists a pending sale tagged with a fresh external
// reference, then asks the gateway for a checkout preference. The sale is
// created first so a webhook racing the response still finds it.
func (s *ventaService) CrearOrdenCompra(ctx context.Context, req dto.CrearOrdenCompraRequest) (*dto.OrdenCompraResponse, error) {
	producto, err := s.productos.FindByID(ctx, req.ProductoID)
	if err != nil {
		return nil, apierror.NotFound("Producto no encontrado")
	}
	if producto.Stock < req.Cantidad {
		return nil, apierror.Validation(fmt.Sprintf("Stock insuficiente: quedan %d unidades", producto.Stock))
	}

	ref := uuid.NewString()
	total := producto.Precio.Mul(decimal.NewFromInt(int64(req.Cantidad)))
	venta := &model.Venta{
		Informacion:       fmt.Sprintf("%dx %s", req.Cantidad, producto.Nombre),
		Total:             total,
		Estado:            model.VentaPendiente,
		ExternalReference: &ref,
		ProductoID:        &producto.ID,
		Cantidad:          req.Cantidad,
	}
	if err := s.ventas.Create(ctx, venta); err != nil {
		return nil, apierror.Internal(err)
	}

	var pref *infra.Preferencia
	err = s.cb.Execute(func() error {
		var cbErr error
		pref, cbErr = s.gateway.CrearPreferencia(ctx, infra.PreferenciaRequest{
			Titulo:            producto.Nombre,
			Cantidad:          req.Cantidad,
			PrecioUnitario:    total.Div(decimal.NewFromInt(int64(req.Cantidad))).InexactFloat64(),
			ExternalReference: ref,
		})
		return cbErr
	})
	if err != nil {
		return nil, apierror.Internal(fmt.Errorf("crear preferencia de pago: %w", err))
	}

	return &dto.OrdenCompraResponse{
		VentaID:           venta.ID,
		Total:             total,
		ExternalReference: ref,
		InitPoint:         pref.InitPoint,
	}, nil
}

// ProcesarWebhook resolves a gateway notification. Unknown types and
// non-approved payments are acknowledged without effect. An approved payment
// marks the pending sale pagada exactly once: the PagoID column is the
// idempotency key, so a redelivered webhook finds the payment already
// recorded and returns without touching stock.
func (s *ventaService) ProcesarWebhook(ctx context.Context, req dto.WebhookRequest) error {
	if req.Type != "payment" || req.Data.ID == "" {
		return nil
	}

	var pago *infra.Pago
	err := s.cb.Execute(func() error {
		var cbErr error
		pago, cbErr = s.gateway.ObtenerPago(ctx, req.Data.ID)
		return cbErr
	})
	if err != nil {
		return apierror.Internal(fmt.Errorf("consultar pago %s: %w", req.Data.ID, err))
	}
	if pago.Status != "approved" {
		log.Info().Str("pago_id", pago.ID).Str("status", pago.Status).Msg("venta: webhook de pago no aprobado, ignorado")
		return nil
	}

	if _, err := s.ventas.FindByPagoID(ctx, pago.ID); err == nil {
		log.Info().Str("pago_id", pago.ID).Msg("venta: webhook duplicado, pago ya registrado")
		return nil
	}

	var confirmada *model.Venta
	err = runTx(ctx, s.ventas.DB(), func(tx *gorm.DB) error {
		venta, err := s.ventas.FindByExternalReferenceForUpdate(tx, pago.ExternalReference)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Warn().Str("external_reference", pago.ExternalReference).Msg("venta: webhook sin venta asociada")
				return nil
			}
			return apierror.Internal(err)
		}
		if venta.Estado != model.VentaPendiente {
			return nil // ya procesada por otra entrega concurrente
		}

		venta.Estado = model.VentaPagada
		venta.PagoID = &pago.ID
		if pago.PaymentMethodID != "" {
			venta.MetodoPago = &pago.PaymentMethodID
		}
		if err := s.ventas.UpdateTx(tx, venta); err != nil {
			return apierror.Internal(err)
		}

		if venta.ProductoID != nil {
			rows, err := s.productos.DescontarStockTx(tx, *venta.ProductoID, venta.Cantidad)
			if err != nil {
				return apierror.Internal(err)
			}
			if rows == 0 {
				// Guard blocked: stock would have gone negative. The sale
				// stays pagada (the buyer already paid) and fábrica has to
				// reconcile by hand.
				log.Warn().
					Uint("venta_id", venta.ID).
					Uint("producto_id", *venta.ProductoID).
					Int("cantidad", venta.Cantidad).
					Msg("venta: stock insuficiente al confirmar pago, stock sin cambios")
			}
		}
		confirmada = venta
		return nil
	})
	if err != nil {
		return err
	}

	// Comprobante en disco, fuera de la transacción: un PDF fallido no debe
	// revertir un pago ya confirmado.
	if confirmada != nil && s.pdfDir != "" {
		if _, err := infra.GenerarComprobantePDF(confirmada, s.pdfDir); err != nil {
			log.Error().Err(err).Uint("venta_id", confirmada.ID).Msg("venta: comprobante PDF no generado")
		}
	}
	return nil
}

func (s *ventaService) Listar(ctx context.Context) ([]dto.VentaResponse, error) {
	vs, err := s.ventas.List(ctx)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	resp := make([]dto.VentaResponse, 0, len(vs))
	for i := range vs {
		resp = append(resp, *ventaToResponse(&vs[i]))
	}
	return resp, nil
}

func (s *ventaService) ObtenerPorID(ctx context.Context, id uint) (*dto.VentaResponse, error) {
	v, err := s.ventas.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Venta no encontrada")
	}
	return ventaToResponse(v), nil
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	return &dto.VentaResponse{
		ID:                      v.ID,
		Informacion:             v.Informacion,
		Total:                   v.Total,
		Estado:                  v.Estado,
		MetodoPago:              v.MetodoPago,
		ProductoID:              v.ProductoID,
		Cantidad:                v.Cantidad,
		ProductoPersonalizadoID: v.ProductoPersonalizadoID,
		CreatedAt:               v.CreatedAt.Format(time.RFC3339),
	}
}

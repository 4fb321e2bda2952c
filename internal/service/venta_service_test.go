package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/4ndreams/GPS-sub001/internal/dto"
	"github.com/4ndreams/GPS-sub001/internal/infra"
	"github.com/4ndreams/GPS-sub001/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVentaFixture(t *testing.T) (*stubVentaRepo, *stubProductoRepo, *stubPagoGateway, VentaService) {
	t.Helper()
	ventas := newStubVentaRepo()
	productos := newStubProductoRepo()
	gateway := newStubPagoGateway()
	cb := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	svc := NewVentaService(ventas, productos, gateway, cb, t.TempDir())
	return ventas, productos, gateway, svc
}

func seedProducto(t *testing.T, productos *stubProductoRepo, stock int) *model.Producto {
	t.Helper()
	p := &model.Producto{
		Nombre: "Puerta Geno 80x200",
		Precio: decimal.NewFromInt(45000),
		Stock:  stock,
	}
	require.NoError(t, productos.Create(context.Background(), p))
	return p
}

func TestCrearOrdenCompra(t *testing.T) {
	ventas, productos, _, svc := newVentaFixture(t)
	p := seedProducto(t, productos, 10)

	resp, err := svc.CrearOrdenCompra(context.Background(), dto.CrearOrdenCompraRequest{
		ProductoID: p.ID,
		Cantidad:   2,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://pago.test/init/pref-1", resp.InitPoint)
	assert.NotEmpty(t, resp.ExternalReference)
	assert.True(t, decimal.NewFromInt(90000).Equal(resp.Total))

	venta, err := ventas.FindByID(context.Background(), resp.VentaID)
	require.NoError(t, err)
	assert.Equal(t, model.VentaPendiente, venta.Estado)
	// El stock no se toca hasta que el pago llega aprobado.
	got, _ := productos.FindByID(context.Background(), p.ID)
	assert.Equal(t, 10, got.Stock)
}

func TestCrearOrdenCompraSinStock(t *testing.T) {
	_, productos, _, svc := newVentaFixture(t)
	p := seedProducto(t, productos, 1)

	_, err := svc.CrearOrdenCompra(context.Background(), dto.CrearOrdenCompraRequest{
		ProductoID: p.ID,
		Cantidad:   3,
	})
	require.Error(t, err)
}

func webhookDe(pagoID string) dto.WebhookRequest {
	req := dto.WebhookRequest{Type: "payment"}
	req.Data.ID = pagoID
	return req
}

func TestWebhookAprobadoDescuentaStock(t *testing.T) {
	ventas, productos, gateway, svc := newVentaFixture(t)
	p := seedProducto(t, productos, 10)

	compra, err := svc.CrearOrdenCompra(context.Background(), dto.CrearOrdenCompraRequest{
		ProductoID: p.ID, Cantidad: 4,
	})
	require.NoError(t, err)

	gateway.pagos["pago-1"] = &infra.Pago{
		ID: "pago-1", Status: "approved",
		ExternalReference: compra.ExternalReference,
		PaymentMethodID:   "debit_card",
	}

	require.NoError(t, svc.ProcesarWebhook(context.Background(), webhookDe("pago-1")))

	venta, err := ventas.FindByID(context.Background(), compra.VentaID)
	require.NoError(t, err)
	assert.Equal(t, model.VentaPagada, venta.Estado)
	require.NotNil(t, venta.PagoID)
	assert.Equal(t, "pago-1", *venta.PagoID)

	got, _ := productos.FindByID(context.Background(), p.ID)
	assert.Equal(t, 6, got.Stock)
}

func TestWebhookDuplicadoPagaUnaSolaVez(t *testing.T) {
	ventas, productos, gateway, svc := newVentaFixture(t)
	p := seedProducto(t, productos, 10)

	compra, err := svc.CrearOrdenCompra(context.Background(), dto.CrearOrdenCompraRequest{
		ProductoID: p.ID, Cantidad: 4,
	})
	require.NoError(t, err)

	gateway.pagos["pago-1"] = &infra.Pago{
		ID: "pago-1", Status: "approved",
		ExternalReference: compra.ExternalReference,
	}

	// El gateway reintenta entregas: tres webhooks idénticos.
	for i := 0; i < 3; i++ {
		require.NoError(t, svc.ProcesarWebhook(context.Background(), webhookDe("pago-1")))
	}

	venta, err := ventas.FindByID(context.Background(), compra.VentaID)
	require.NoError(t, err)
	assert.Equal(t, model.VentaPagada, venta.Estado)

	// El stock se descontó exactamente una vez.
	got, _ := productos.FindByID(context.Background(), p.ID)
	assert.Equal(t, 6, got.Stock)
}

func TestWebhookStockInsuficienteNoDejaNegativo(t *testing.T) {
	ventas, productos, gateway, svc := newVentaFixture(t)
	p := seedProducto(t, productos, 5)

	compra, err := svc.CrearOrdenCompra(context.Background(), dto.CrearOrdenCompraRequest{
		ProductoID: p.ID, Cantidad: 4,
	})
	require.NoError(t, err)

	// Otra venta vació el stock entre el checkout y el pago.
	agotado, _ := productos.FindByID(context.Background(), p.ID)
	agotado.Stock = 1
	require.NoError(t, productos.Update(context.Background(), agotado))

	gateway.pagos["pago-1"] = &infra.Pago{
		ID: "pago-1", Status: "approved",
		ExternalReference: compra.ExternalReference,
	}
	require.NoError(t, svc.ProcesarWebhook(context.Background(), webhookDe("pago-1")))

	// La venta queda pagada (el comprador ya pagó) pero el stock no baja de 0.
	venta, err := ventas.FindByID(context.Background(), compra.VentaID)
	require.NoError(t, err)
	assert.Equal(t, model.VentaPagada, venta.Estado)

	got, _ := productos.FindByID(context.Background(), p.ID)
	assert.Equal(t, 1, got.Stock)
}

func TestWebhookAprobadoEmiteComprobantePDF(t *testing.T) {
	ventas := newStubVentaRepo()
	productos := newStubProductoRepo()
	gateway := newStubPagoGateway()
	dir := t.TempDir()
	svc := NewVentaService(ventas, productos, gateway, infra.NewCircuitBreaker(infra.DefaultCBConfig()), dir)

	p := seedProducto(t, productos, 10)
	compra, err := svc.CrearOrdenCompra(context.Background(), dto.CrearOrdenCompraRequest{
		ProductoID: p.ID, Cantidad: 2,
	})
	require.NoError(t, err)

	gateway.pagos["pago-1"] = &infra.Pago{
		ID: "pago-1", Status: "approved",
		ExternalReference: compra.ExternalReference,
	}
	require.NoError(t, svc.ProcesarWebhook(context.Background(), webhookDe("pago-1")))

	comprobante := filepath.Join(dir, fmt.Sprintf("comprobante_%d.pdf", compra.VentaID))
	info, err := os.Stat(comprobante)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	// Una entrega repetida no vuelve a aplicar efectos; el comprobante ya
	// existente queda igual.
	require.NoError(t, svc.ProcesarWebhook(context.Background(), webhookDe("pago-1")))
}

func TestWebhookTipoDesconocidoSeIgnora(t *testing.T) {
	_, _, gateway, svc := newVentaFixture(t)

	req := dto.WebhookRequest{Type: "merchant_order"}
	req.Data.ID = "whatever"
	require.NoError(t, svc.ProcesarWebhook(context.Background(), req))
	assert.Zero(t, gateway.obtenido)
}

func TestWebhookPagoNoAprobadoNoAplicaEfectos(t *testing.T) {
	ventas, productos, gateway, svc := newVentaFixture(t)
	p := seedProducto(t, productos, 10)

	compra, err := svc.CrearOrdenCompra(context.Background(), dto.CrearOrdenCompraRequest{
		ProductoID: p.ID, Cantidad: 2,
	})
	require.NoError(t, err)

	gateway.pagos["pago-1"] = &infra.Pago{
		ID: "pago-1", Status: "rejected",
		ExternalReference: compra.ExternalReference,
	}
	require.NoError(t, svc.ProcesarWebhook(context.Background(), webhookDe("pago-1")))

	venta, err := ventas.FindByID(context.Background(), compra.VentaID)
	require.NoError(t, err)
	assert.Equal(t, model.VentaPendiente, venta.Estado)
	got, _ := productos.FindByID(context.Background(), p.ID)
	assert.Equal(t, 10, got.Stock)
}

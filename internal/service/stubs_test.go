package service

import (
	"context"
	"errors"
	"strings"

	"github.com/4ndreams/GPS-sub001/internal/dto"
	"github.com/4ndreams/GPS-sub001/internal/infra"
	"github.com/4ndreams/GPS-sub001/internal/model"

	"gorm.io/gorm"
)

var errNotFound = errors.New("not found")

// ── stubOrdenRepo ─────────────────────────────────────────────────────────────

// stubOrdenRepo is an in-memory OrdenRepository. DB() returns nil so runTx
// executes the callback without a real transaction.
type stubOrdenRepo struct {
	ordenes map[uint]*model.Orden
	seq     uint
}

func newStubOrdenRepo() *stubOrdenRepo {
	return &stubOrdenRepo{ordenes: make(map[uint]*model.Orden)}
}

func (r *stubOrdenRepo) Create(_ context.Context, o *model.Orden) error {
	r.seq++
	o.ID = r.seq
	cp := *o
	r.ordenes[o.ID] = &cp
	return nil
}

func (r *stubOrdenRepo) FindByID(_ context.Context, id uint) (*model.Orden, error) {
	o, ok := r.ordenes[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *stubOrdenRepo) List(_ context.Context, filter dto.OrdenFilter) ([]model.Orden, error) {
	estados := make(map[string]bool)
	if filter.Estados != "" {
		for _, e := range strings.Split(filter.Estados, ",") {
			estados[strings.TrimSpace(e)] = true
		}
	}
	out := make([]model.Orden, 0, len(r.ordenes))
	for _, o := range r.ordenes {
		if len(estados) > 0 && !estados[o.Estado] {
			continue
		}
		if filter.Tipo != "" && o.Tipo != filter.Tipo {
			continue
		}
		out = append(out, *o)
	}
	return out, nil
}

func (r *stubOrdenRepo) Update(_ context.Context, o *model.Orden) error {
	if _, ok := r.ordenes[o.ID]; !ok {
		return errNotFound
	}
	cp := *o
	r.ordenes[o.ID] = &cp
	return nil
}

func (r *stubOrdenRepo) Delete(_ context.Context, id uint) error {
	delete(r.ordenes, id)
	return nil
}

func (r *stubOrdenRepo) CountByEstado(_ context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, o := range r.ordenes {
		counts[o.Estado]++
	}
	return counts, nil
}

func (r *stubOrdenRepo) FindByIDForUpdate(_ *gorm.DB, id uint) (*model.Orden, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubOrdenRepo) UpdateTx(_ *gorm.DB, o *model.Orden) error {
	return r.Update(context.Background(), o)
}

func (r *stubOrdenRepo) DB() *gorm.DB { return nil }

// ── stubNotificacionRepo ──────────────────────────────────────────────────────

type stubNotificacionRepo struct {
	notifs map[uint]*model.Notificacion
	seq    uint
}

func newStubNotificacionRepo() *stubNotificacionRepo {
	return &stubNotificacionRepo{notifs: make(map[uint]*model.Notificacion)}
}

func (r *stubNotificacionRepo) Create(_ context.Context, n *model.Notificacion) error {
	r.seq++
	n.ID = r.seq
	cp := *n
	r.notifs[n.ID] = &cp
	return nil
}

func (r *stubNotificacionRepo) FindByID(_ context.Context, id uint) (*model.Notificacion, error) {
	n, ok := r.notifs[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *n
	return &cp, nil
}

func (r *stubNotificacionRepo) List(_ context.Context, limit int, soloNoLeidas bool) ([]model.Notificacion, error) {
	out := make([]model.Notificacion, 0, len(r.notifs))
	// Newest first by id.
	for id := r.seq; id >= 1; id-- {
		n, ok := r.notifs[id]
		if !ok {
			continue
		}
		if soloNoLeidas && n.Leida {
			continue
		}
		out = append(out, *n)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *stubNotificacionRepo) ListAlertasActivas(_ context.Context) ([]model.Notificacion, error) {
	var out []model.Notificacion
	for id := r.seq; id >= 1; id-- {
		n, ok := r.notifs[id]
		if !ok {
			continue
		}
		if n.EsAlerta() && !n.Resuelta {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *stubNotificacionRepo) Update(_ context.Context, n *model.Notificacion) error {
	if _, ok := r.notifs[n.ID]; !ok {
		return errNotFound
	}
	cp := *n
	r.notifs[n.ID] = &cp
	return nil
}

func (r *stubNotificacionRepo) PurgeResolved(_ context.Context, keep int) (int64, error) {
	var resolved []uint
	for id := uint(1); id <= r.seq; id++ {
		if n, ok := r.notifs[id]; ok && n.Leida && n.Resuelta {
			resolved = append(resolved, id)
		}
	}
	var purged int64
	for len(resolved) > keep {
		delete(r.notifs, resolved[0])
		resolved = resolved[1:]
		purged++
	}
	return purged, nil
}

// ── stubProductoRepo ──────────────────────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uint]*model.Producto
	seq       uint
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uint]*model.Producto)}
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	r.seq++
	p.ID = r.seq
	cp := *p
	r.productos[p.ID] = &cp
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uint) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	out := make([]model.Producto, 0, len(r.productos))
	for _, p := range r.productos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	if _, ok := r.productos[p.ID]; !ok {
		return errNotFound
	}
	cp := *p
	r.productos[p.ID] = &cp
	return nil
}

func (r *stubProductoRepo) Delete(_ context.Context, id uint) error {
	delete(r.productos, id)
	return nil
}

func (r *stubProductoRepo) AddImagen(_ context.Context, _ *model.Imagen) error { return nil }

func (r *stubProductoRepo) DescontarStockTx(_ *gorm.DB, id uint, cantidad int) (int64, error) {
	p, ok := r.productos[id]
	if !ok || p.Stock < cantidad {
		return 0, nil
	}
	p.Stock -= cantidad
	return 1, nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

// ── stubVentaRepo ─────────────────────────────────────────────────────────────

type stubVentaRepo struct {
	ventas map[uint]*model.Venta
	seq    uint
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[uint]*model.Venta)}
}

func (r *stubVentaRepo) Create(_ context.Context, v *model.Venta) error {
	r.seq++
	v.ID = r.seq
	cp := *v
	r.ventas[v.ID] = &cp
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uint) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *stubVentaRepo) FindByExternalReference(_ context.Context, ref string) (*model.Venta, error) {
	for _, v := range r.ventas {
		if v.ExternalReference != nil && *v.ExternalReference == ref {
			cp := *v
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubVentaRepo) FindByPagoID(_ context.Context, pagoID string) (*model.Venta, error) {
	for _, v := range r.ventas {
		if v.PagoID != nil && *v.PagoID == pagoID {
			cp := *v
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubVentaRepo) FindByCotizacionID(_ context.Context, cotizacionID uint) (*model.Venta, error) {
	for _, v := range r.ventas {
		if v.ProductoPersonalizadoID != nil && *v.ProductoPersonalizadoID == cotizacionID {
			cp := *v
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubVentaRepo) List(_ context.Context) ([]model.Venta, error) {
	out := make([]model.Venta, 0, len(r.ventas))
	for _, v := range r.ventas {
		out = append(out, *v)
	}
	return out, nil
}

func (r *stubVentaRepo) Update(_ context.Context, v *model.Venta) error {
	if _, ok := r.ventas[v.ID]; !ok {
		return errNotFound
	}
	cp := *v
	r.ventas[v.ID] = &cp
	return nil
}

func (r *stubVentaRepo) FindByExternalReferenceForUpdate(_ *gorm.DB, ref string) (*model.Venta, error) {
	return r.FindByExternalReference(context.Background(), ref)
}

func (r *stubVentaRepo) UpdateTx(_ *gorm.DB, v *model.Venta) error {
	return r.Update(context.Background(), v)
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

// ── stubCotizacionRepo ────────────────────────────────────────────────────────

type stubCotizacionRepo struct {
	cotizaciones map[uint]*model.ProductoPersonalizado
	seq          uint
}

func newStubCotizacionRepo() *stubCotizacionRepo {
	return &stubCotizacionRepo{cotizaciones: make(map[uint]*model.ProductoPersonalizado)}
}

func (r *stubCotizacionRepo) Create(_ context.Context, c *model.ProductoPersonalizado) error {
	r.seq++
	c.ID = r.seq
	cp := *c
	r.cotizaciones[c.ID] = &cp
	return nil
}

func (r *stubCotizacionRepo) FindByID(_ context.Context, id uint) (*model.ProductoPersonalizado, error) {
	c, ok := r.cotizaciones[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubCotizacionRepo) List(_ context.Context) ([]model.ProductoPersonalizado, error) {
	out := make([]model.ProductoPersonalizado, 0, len(r.cotizaciones))
	for _, c := range r.cotizaciones {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCotizacionRepo) Update(_ context.Context, c *model.ProductoPersonalizado) error {
	if _, ok := r.cotizaciones[c.ID]; !ok {
		return errNotFound
	}
	cp := *c
	r.cotizaciones[c.ID] = &cp
	return nil
}

// ── stubPagoGateway ───────────────────────────────────────────────────────────

// stubPagoGateway returns canned payments and counts lookups.
type stubPagoGateway struct {
	pagos       map[string]*infra.Pago
	obtenido    int
	preferencia *infra.Preferencia
}

func newStubPagoGateway() *stubPagoGateway {
	return &stubPagoGateway{
		pagos:       make(map[string]*infra.Pago),
		preferencia: &infra.Preferencia{ID: "pref-1", InitPoint: "https://pago.test/init/pref-1"},
	}
}

func (g *stubPagoGateway) CrearPreferencia(_ context.Context, _ infra.PreferenciaRequest) (*infra.Preferencia, error) {
	return g.preferencia, nil
}

func (g *stubPagoGateway) ObtenerPago(_ context.Context, pagoID string) (*infra.Pago, error) {
	g.obtenido++
	p, ok := g.pagos[pagoID]
	if !ok {
		return nil, errNotFound
	}
	return p, nil
}

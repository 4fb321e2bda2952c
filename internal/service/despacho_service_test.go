package service

import (
	"context"
	"testing"

	"github.com/4ndreams/GPS-sub001/internal/dto"
	"github.com/4ndreams/GPS-sub001/internal/model"
	"github.com/4ndreams/GPS-sub001/internal/realtime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDespachoFixture(t *testing.T) (*stubOrdenRepo, OrdenService, DespachoService) {
	t.Helper()
	repo := newStubOrdenRepo()
	notifs := NewNotificacionService(newStubNotificacionRepo(), nil, realtime.NewNoopPublisher(), "admin@terplac.cl")
	ordenes := NewOrdenService(repo, notifs, realtime.NewNoopPublisher())
	despachos := NewDespachoService(repo, notifs, realtime.NewNoopPublisher())
	return repo, ordenes, despachos
}

func TestCrearDespachoLoteCompleto(t *testing.T) {
	repo, ordenes, despachos := newDespachoFixture(t)

	a := crearOrdenBase(t, ordenes)
	b := crearOrdenBase(t, ordenes)
	for _, id := range []uint{a.ID, b.ID} {
		_, err := ordenes.MarcarCompletada(context.Background(), id)
		require.NoError(t, err)
	}

	resp, err := despachos.CrearDespacho(context.Background(), dto.CrearDespachoRequest{
		OrdenesIDs:    []uint{a.ID, b.ID},
		Transportista: "Acme",
	})
	require.NoError(t, err)
	require.Len(t, resp.Ordenes, 2)
	assert.Equal(t, 2, resp.TotalOrdenes)
	assert.Equal(t, "Acme", resp.Transportista)

	for _, id := range []uint{a.ID, b.ID} {
		orden, err := repo.FindByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, model.EstadoEnTransito, orden.Estado)
		require.NotNil(t, orden.Transportista)
		assert.Equal(t, "Acme", *orden.Transportista)
		assert.NotNil(t, orden.FechaEnvio)
	}
}

func TestCrearDespachoLoteMixtoNoMutaNada(t *testing.T) {
	// Lote [Fabricada, Pendiente]: el despacho completo se rechaza y la
	// primera orden queda exactamente como estaba.
	repo, ordenes, despachos := newDespachoFixture(t)

	fabricada := crearOrdenBase(t, ordenes)
	pendiente := crearOrdenBase(t, ordenes)
	_, err := ordenes.MarcarCompletada(context.Background(), fabricada.ID)
	require.NoError(t, err)

	_, err = despachos.CrearDespacho(context.Background(), dto.CrearDespachoRequest{
		OrdenesIDs:    []uint{fabricada.ID, pendiente.ID},
		Transportista: "Acme",
	})
	require.Error(t, err)

	primera, err := repo.FindByID(context.Background(), fabricada.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EstadoFabricada, primera.Estado)
	assert.Nil(t, primera.Transportista)
	assert.Nil(t, primera.FechaEnvio)

	segunda, err := repo.FindByID(context.Background(), pendiente.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EstadoPendiente, segunda.Estado)
}

func TestCrearDespachoOrdenInexistente(t *testing.T) {
	_, ordenes, despachos := newDespachoFixture(t)

	fabricada := crearOrdenBase(t, ordenes)
	_, err := ordenes.MarcarCompletada(context.Background(), fabricada.ID)
	require.NoError(t, err)

	_, err = despachos.CrearDespacho(context.Background(), dto.CrearDespachoRequest{
		OrdenesIDs:    []uint{fabricada.ID, 999},
		Transportista: "Acme",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "999")
}

func TestFlujoCompletoHastaDespacho(t *testing.T) {
	// Pendiente → En producción → Fabricada → despacho: la orden termina
	// "En tránsito" con transportista "Acme" y fecha_envio seteada.
	repo, ordenes, despachos := newDespachoFixture(t)

	orden := crearOrdenBase(t, ordenes)

	estado := model.EstadoEnProduccion
	_, err := ordenes.Actualizar(context.Background(), orden.ID, dto.ActualizarOrdenRequest{Estado: &estado})
	require.NoError(t, err)

	fabricada, err := ordenes.MarcarCompletada(context.Background(), orden.ID)
	require.NoError(t, err)
	require.Equal(t, "Fabricada", fabricada.Estado)

	resp, err := despachos.CrearDespacho(context.Background(), dto.CrearDespachoRequest{
		OrdenesIDs:    []uint{orden.ID},
		Transportista: "Acme",
	})
	require.NoError(t, err)
	require.Len(t, resp.Ordenes, 1)

	final, err := repo.FindByID(context.Background(), orden.ID)
	require.NoError(t, err)
	assert.Equal(t, "En tránsito", final.Estado)
	require.NotNil(t, final.Transportista)
	assert.Equal(t, "Acme", *final.Transportista)
	require.NotNil(t, final.FechaEnvio)
}

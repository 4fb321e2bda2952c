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

func newOrdenService(repo *stubOrdenRepo) OrdenService {
	notifs := NewNotificacionService(newStubNotificacionRepo(), nil, realtime.NewNoopPublisher(), "admin@terplac.cl")
	return NewOrdenService(repo, notifs, realtime.NewNoopPublisher())
}

func crearOrdenBase(t *testing.T, svc OrdenService) *dto.OrdenResponse {
	t.Helper()
	resp, err := svc.Crear(context.Background(), dto.CrearOrdenRequest{
		Cantidad:   10,
		Origen:     "Fábrica Central",
		Destino:    "Tienda Providencia",
		ProductoID: 1,
		UsuarioID:  1,
		BodegaID:   1,
	})
	require.NoError(t, err)
	return resp
}

func TestCrearOrdenDefaultsPendiente(t *testing.T) {
	svc := newOrdenService(newStubOrdenRepo())

	resp := crearOrdenBase(t, svc)

	assert.Equal(t, "Pendiente", resp.Estado)
	assert.Equal(t, "Media", resp.Prioridad)
	assert.Equal(t, "normal", resp.Tipo)
}

func TestMarcarCompletadaSiempreFabricada(t *testing.T) {
	// El estado resultante es el literal fijo "Fabricada", sin importar el
	// estado de partida.
	for _, desde := range []string{
		model.EstadoPendiente,
		model.EstadoEnProduccion,
		model.EstadoEnTransito,
		model.EstadoCancelado,
	} {
		repo := newStubOrdenRepo()
		svc := newOrdenService(repo)
		orden := crearOrdenBase(t, svc)

		estado := desde
		_, err := svc.Actualizar(context.Background(), orden.ID, dto.ActualizarOrdenRequest{Estado: &estado})
		require.NoError(t, err)

		resp, err := svc.MarcarCompletada(context.Background(), orden.ID)
		require.NoError(t, err)
		assert.Equal(t, "Fabricada", resp.Estado, "desde %s", desde)
	}
}

func TestCancelarSinGuardaDeOrigen(t *testing.T) {
	repo := newStubOrdenRepo()
	svc := newOrdenService(repo)
	orden := crearOrdenBase(t, svc)

	estado := model.EstadoRecibido
	_, err := svc.Actualizar(context.Background(), orden.ID, dto.ActualizarOrdenRequest{Estado: &estado})
	require.NoError(t, err)

	resp, err := svc.Cancelar(context.Background(), orden.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EstadoCancelado, resp.Estado)
}

func TestActualizarParcialConservaCampos(t *testing.T) {
	repo := newStubOrdenRepo()
	svc := newOrdenService(repo)
	orden := crearOrdenBase(t, svc)

	prioridad := "Urgente"
	resp, err := svc.Actualizar(context.Background(), orden.ID, dto.ActualizarOrdenRequest{Prioridad: &prioridad})
	require.NoError(t, err)

	assert.Equal(t, "Urgente", resp.Prioridad)
	assert.Equal(t, orden.Origen, resp.Origen)
	assert.Equal(t, orden.Destino, resp.Destino)
	assert.Equal(t, orden.Cantidad, resp.Cantidad)
}

func TestObtenerPorIDInexistente(t *testing.T) {
	svc := newOrdenService(newStubOrdenRepo())

	_, err := svc.ObtenerPorID(context.Background(), 99)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no encontrada")
}

func TestConfirmarRecepcionConforme(t *testing.T) {
	repo := newStubOrdenRepo()
	svc := newOrdenService(repo)
	orden := crearOrdenBase(t, svc)

	estado := model.EstadoEnTransito
	_, err := svc.Actualizar(context.Background(), orden.ID, dto.ActualizarOrdenRequest{Estado: &estado})
	require.NoError(t, err)

	resp, err := svc.ConfirmarRecepcion(context.Background(), orden.ID, dto.ConfirmarRecepcionRequest{})
	require.NoError(t, err)
	assert.Equal(t, model.EstadoRecibido, resp.Estado)
	assert.NotNil(t, resp.FechaEntrega)
}

func TestConfirmarRecepcionConProblemas(t *testing.T) {
	repo := newStubOrdenRepo()
	notifRepo := newStubNotificacionRepo()
	notifs := NewNotificacionService(notifRepo, nil, realtime.NewNoopPublisher(), "admin@terplac.cl")
	svc := NewOrdenService(repo, notifs, realtime.NewNoopPublisher())
	orden := crearOrdenBase(t, svc)

	estado := model.EstadoEnTransito
	_, err := svc.Actualizar(context.Background(), orden.ID, dto.ActualizarOrdenRequest{Estado: &estado})
	require.NoError(t, err)

	resp, err := svc.ConfirmarRecepcion(context.Background(), orden.ID, dto.ConfirmarRecepcionRequest{
		ProductosFaltantes:   []string{"Puerta Geno 80x200"},
		ProductosDefectuosos: []string{"Puerta Vicenza 70x200"},
	})
	require.NoError(t, err)
	assert.Equal(t, model.EstadoRecibidoConProblemas, resp.Estado)

	alertas, err := notifs.AlertasActivas(context.Background())
	require.NoError(t, err)
	// Una alerta de faltantes y una de defectos.
	require.Len(t, alertas, 2)
}

func TestConfirmarRecepcionRequiereEnTransito(t *testing.T) {
	repo := newStubOrdenRepo()
	svc := newOrdenService(repo)
	orden := crearOrdenBase(t, svc)

	_, err := svc.ConfirmarRecepcion(context.Background(), orden.ID, dto.ConfirmarRecepcionRequest{})
	require.Error(t, err)
}

func TestEstadisticasPorEstado(t *testing.T) {
	repo := newStubOrdenRepo()
	svc := newOrdenService(repo)

	a := crearOrdenBase(t, svc)
	crearOrdenBase(t, svc)
	_, err := svc.MarcarCompletada(context.Background(), a.ID)
	require.NoError(t, err)

	stats, err := svc.Estadisticas(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.PorEstado[model.EstadoFabricada])
	assert.Equal(t, int64(1), stats.PorEstado[model.EstadoPendiente])
}

func TestListarFiltraPorEstados(t *testing.T) {
	repo := newStubOrdenRepo()
	svc := newOrdenService(repo)

	a := crearOrdenBase(t, svc)
	crearOrdenBase(t, svc)
	_, err := svc.MarcarCompletada(context.Background(), a.ID)
	require.NoError(t, err)

	resp, err := svc.Listar(context.Background(), dto.OrdenFilter{Estados: "Fabricada,En tránsito"})
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, model.EstadoFabricada, resp[0].Estado)
}

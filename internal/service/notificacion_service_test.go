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

func newNotificacionService(repo *stubNotificacionRepo) NotificacionService {
	return NewNotificacionService(repo, nil, realtime.NewNoopPublisher(), "admin@terplac.cl")
}

func TestCrearNotificacionDefaults(t *testing.T) {
	svc := newNotificacionService(newStubNotificacionRepo())

	resp, err := svc.Crear(context.Background(), dto.CrearNotificacionRequest{
		Tipo:    model.TipoOrdenActualizada,
		Mensaje: "Orden #1 actualizada",
	})
	require.NoError(t, err)
	assert.Equal(t, "media", resp.Prioridad)
	assert.False(t, resp.Leida)
	assert.False(t, resp.Resuelta)
}

func TestMarcarLeidaEsIdempotente(t *testing.T) {
	repo := newStubNotificacionRepo()
	svc := newNotificacionService(repo)

	n, err := svc.Crear(context.Background(), dto.CrearNotificacionRequest{
		Tipo:    model.TipoOrdenActualizada,
		Mensaje: "Orden #1 actualizada",
	})
	require.NoError(t, err)

	primera, err := svc.MarcarLeida(context.Background(), n.ID)
	require.NoError(t, err)
	assert.True(t, primera.Leida)

	// Marcar de nuevo no falla ni cambia nada.
	segunda, err := svc.MarcarLeida(context.Background(), n.ID)
	require.NoError(t, err)
	assert.True(t, segunda.Leida)
	assert.Equal(t, primera, segunda)
}

func TestAlertasActivasSoloTiposDeAlerta(t *testing.T) {
	svc := newNotificacionService(newStubNotificacionRepo())

	_, err := svc.Crear(context.Background(), dto.CrearNotificacionRequest{
		Tipo: model.TipoOrdenActualizada, Mensaje: "no es alerta",
	})
	require.NoError(t, err)
	alerta, err := svc.Crear(context.Background(), dto.CrearNotificacionRequest{
		Tipo: model.TipoAlertaFaltante, Mensaje: "faltan puertas",
	})
	require.NoError(t, err)

	activas, err := svc.AlertasActivas(context.Background())
	require.NoError(t, err)
	require.Len(t, activas, 1)
	assert.Equal(t, alerta.ID, activas[0].ID)
}

func TestResolverAlerta(t *testing.T) {
	svc := newNotificacionService(newStubNotificacionRepo())

	alerta, err := svc.Crear(context.Background(), dto.CrearNotificacionRequest{
		Tipo: model.TipoDefectoCalidad, Mensaje: "bisagras sueltas",
	})
	require.NoError(t, err)

	resuelta, err := svc.Resolver(context.Background(), alerta.ID, "Se reemplazaron las unidades")
	require.NoError(t, err)
	assert.True(t, resuelta.Resuelta)
	assert.True(t, resuelta.Leida)
	require.NotNil(t, resuelta.Resolucion)

	// Resolver dos veces es conflicto.
	_, err = svc.Resolver(context.Background(), alerta.ID, "otra vez")
	require.Error(t, err)

	activas, err := svc.AlertasActivas(context.Background())
	require.NoError(t, err)
	assert.Empty(t, activas)
}

func TestResolverNoAlertaEsConflicto(t *testing.T) {
	svc := newNotificacionService(newStubNotificacionRepo())

	n, err := svc.Crear(context.Background(), dto.CrearNotificacionRequest{
		Tipo: model.TipoOrdenActualizada, Mensaje: "no es alerta",
	})
	require.NoError(t, err)

	_, err = svc.Resolver(context.Background(), n.ID, "da igual")
	require.Error(t, err)
}

func TestConstructoresDeAlertas(t *testing.T) {
	svc := newNotificacionService(newStubNotificacionRepo())

	require.NoError(t, svc.NotificarProductosFaltantes(context.Background(), 7, 2, []string{"Puerta Geno"}))
	require.NoError(t, svc.NotificarDefectosCalidad(context.Background(), 7, 2, []string{"Puerta Vicenza"}))
	require.NoError(t, svc.NotificarRecepcionExitosa(context.Background(), 8, 2))

	activas, err := svc.AlertasActivas(context.Background())
	require.NoError(t, err)
	// La recepción exitosa es informativa, no alerta.
	require.Len(t, activas, 2)
	for _, a := range activas {
		assert.Equal(t, model.PrioridadCritica, a.Prioridad)
	}
}

func TestListarSoloNoLeidas(t *testing.T) {
	svc := newNotificacionService(newStubNotificacionRepo())

	a, err := svc.Crear(context.Background(), dto.CrearNotificacionRequest{
		Tipo: model.TipoOrdenActualizada, Mensaje: "uno",
	})
	require.NoError(t, err)
	_, err = svc.Crear(context.Background(), dto.CrearNotificacionRequest{
		Tipo: model.TipoOrdenActualizada, Mensaje: "dos",
	})
	require.NoError(t, err)

	_, err = svc.MarcarLeida(context.Background(), a.ID)
	require.NoError(t, err)

	noLeidas, err := svc.Listar(context.Background(), dto.NotificacionFilter{Limit: 10, SoloNoLeidas: true})
	require.NoError(t, err)
	require.Len(t, noLeidas, 1)
	assert.Equal(t, "dos", noLeidas[0].Mensaje)
}

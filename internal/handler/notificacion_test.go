package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/4ndreams/GPS-sub001/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubNotificacionService records Listar calls so the tests can assert the
// handler never reaches the service on invalid query input.
type stubNotificacionService struct {
	listarCalls  int
	ultimoFiltro dto.NotificacionFilter
}

func (s *stubNotificacionService) Crear(_ context.Context, _ dto.CrearNotificacionRequest) (*dto.NotificacionResponse, error) {
	return &dto.NotificacionResponse{}, nil
}

func (s *stubNotificacionService) Listar(_ context.Context, filter dto.NotificacionFilter) ([]dto.NotificacionResponse, error) {
	s.listarCalls++
	s.ultimoFiltro = filter
	return []dto.NotificacionResponse{}, nil
}

func (s *stubNotificacionService) AlertasActivas(_ context.Context) ([]dto.NotificacionResponse, error) {
	return []dto.NotificacionResponse{}, nil
}

func (s *stubNotificacionService) MarcarLeida(_ context.Context, _ uint) (*dto.NotificacionResponse, error) {
	return &dto.NotificacionResponse{}, nil
}

func (s *stubNotificacionService) Resolver(_ context.Context, _ uint, _ string) (*dto.NotificacionResponse, error) {
	return &dto.NotificacionResponse{}, nil
}

func (s *stubNotificacionService) NotificarProductosFaltantes(_ context.Context, _, _ uint, _ []string) error {
	return nil
}

func (s *stubNotificacionService) NotificarDefectosCalidad(_ context.Context, _, _ uint, _ []string) error {
	return nil
}

func (s *stubNotificacionService) NotificarRecepcionExitosa(_ context.Context, _, _ uint) error {
	return nil
}

func newNotificacionRouter(svc *stubNotificacionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewNotificacionHandler(svc)
	r.GET("/api/notificaciones", h.Listar)
	return r
}

func TestListarNotificacionesRechazaLimiteFueraDeRango(t *testing.T) {
	svc := &stubNotificacionService{}
	r := newNotificacionRouter(svc)

	for _, q := range []string{"limit=0", "limit=9999", "limit=-5"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/notificaciones?"+q, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, q)
	}
	assert.Zero(t, svc.listarCalls, "el servicio no debe recibir límites inválidos")
}

func TestListarNotificacionesAceptaLimiteValido(t *testing.T) {
	svc := &stubNotificacionService{}
	r := newNotificacionRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/notificaciones?limit=25&soloNoLeidas=true", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.listarCalls)
	assert.Equal(t, 25, svc.ultimoFiltro.Limit)
	assert.True(t, svc.ultimoFiltro.SoloNoLeidas)
}

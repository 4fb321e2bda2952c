package handler

import (
	"net/http"

	"github.com/4ndreams/GPS-sub001/internal/dto"
	"github.com/4ndreams/GPS-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificacionHandler struct{ svc service.NotificacionService }

func NewNotificacionHandler(svc service.NotificacionService) *NotificacionHandler {
	return &NotificacionHandler{svc: svc}
}

// Listar godoc
// @Summary      Listar notificaciones
// @Description  Retorna las notificaciones más recientes primero.
// @Tags         notificaciones
// @Produce      json
// @Security     BearerAuth
// @Param        limit        query int  false "Máximo de filas (default 50)"
// @Param        soloNoLeidas query bool false "Sólo no leídas"
// @Success      200 {object} map[string]interface{}
// @Router       /api/notificaciones [get]
func (h *NotificacionHandler) Listar(c *gin.Context) {
	var filter dto.NotificacionFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		errorStatus(c, err)
		return
	}
	respondStatus(c, http.StatusOK, "Notificaciones encontradas", resp)
}

// Crear godoc
// @Summary      Crear notificación
// @Tags         notificaciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearNotificacionRequest true "Notificación"
// @Success      201 {object} map[string]interface{}
// @Router       /api/notificaciones [post]
func (h *NotificacionHandler) Crear(c *gin.Context) {
	var req dto.CrearNotificacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		errorStatus(c, err)
		return
	}
	respondStatus(c, http.StatusCreated, "Notificación creada", resp)
}

// MarcarLeida godoc
// @Summary      Marcar notificación como leída
// @Description  Idempotente: marcar una notificación ya leída no falla ni cambia nada.
// @Tags         notificaciones
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "ID de la notificación"
// @Success      200 {object} map[string]interface{}
// @Router       /api/notificaciones/{id}/leida [patch]
func (h *NotificacionHandler) MarcarLeida(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.MarcarLeida(c.Request.Context(), id)
	if err != nil {
		errorStatus(c, err)
		return
	}
	respondStatus(c, http.StatusOK, "Notificación marcada como leída", resp)
}

// AlertasActivas godoc
// @Summary      Alertas activas
// @Description  Alertas de faltantes, defectos o recepción con problemas aún sin resolver.
// @Tags         notificaciones
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]interface{}
// @Router       /api/notificaciones/alertas/activas [get]
func (h *NotificacionHandler) AlertasActivas(c *gin.Context) {
	resp, err := h.svc.AlertasActivas(c.Request.Context())
	if err != nil {
		errorStatus(c, err)
		return
	}
	respondStatus(c, http.StatusOK, "Alertas activas", resp)
}

// ResolverAlerta godoc
// @Summary      Resolver alerta
// @Tags         notificaciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path int true "ID de la alerta"
// @Param        body body dto.ResolverAlertaRequest true "Resolución"
// @Success      200 {object} map[string]interface{}
// @Failure      409 {object} map[string]interface{}
// @Router       /api/notificaciones/alertas/{id}/resolver [post]
func (h *NotificacionHandler) ResolverAlerta(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ResolverAlertaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Resolver(c.Request.Context(), id, req.Resolucion)
	if err != nil {
		errorStatus(c, err)
		return
	}
	respondStatus(c, http.StatusOK, "Alerta resuelta", resp)
}

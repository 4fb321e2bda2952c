package handler

import (
	"net/http"

	"github.com/4ndreams/GPS-sub001/internal/apierror"
	"github.com/4ndreams/GPS-sub001/internal/dto"
	"github.com/4ndreams/GPS-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type OrdenHandler struct{ svc service.OrdenService }

func NewOrdenHandler(svc service.OrdenService) *OrdenHandler { return &OrdenHandler{svc: svc} }

// Listar godoc
// @Summary      Listar órdenes
// @Description  Retorna las órdenes filtradas por estados (separados por coma) y/o tipo.
// @Tags         ordenes
// @Produce      json
// @Security     BearerAuth
// @Param        estados query string false "Estados separados por coma, ej: Fabricada,En tránsito"
// @Param        tipo    query string false "normal | stock"
// @Success      200 {object} map[string]interface{}
// @Router       /api/orden [get]
func (h *OrdenHandler) Listar(c *gin.Context) {
	var filter dto.OrdenFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		errorStatus(c, err)
		return
	}
	respondStatus(c, http.StatusOK, "Órdenes encontradas", resp)
}

// ObtenerPorID godoc
// @Summary      Obtener orden por id
// @Tags         ordenes
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "ID de la orden"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /api/orden/{id} [get]
func (h *OrdenHandler) ObtenerPorID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		errorStatus(c, err)
		return
	}
	respondStatus(c, http.StatusOK, "Orden encontrada", resp)
}

// Crear godoc
// @Summary      Crear orden
// @Description  Crea una orden en estado Pendiente.
// @Tags         ordenes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearOrdenRequest true "Datos de la orden"
// @Success      201 {object} map[string]interface{}
// @Router       /api/orden [post]
func (h *OrdenHandler) Crear(c *gin.Context) {
	var req dto.CrearOrdenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		errorStatus(c, err)
		return
	}
	respondStatus(c, http.StatusCreated, "Orden creada exitosamente", resp)
}

// Actualizar godoc
// @Summary      Actualizar orden
// @Description  Actualización parcial: los campos ausentes conservan su valor.
// @Tags         ordenes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path int true "ID de la orden"
// @Param        body body dto.ActualizarOrdenRequest true "Campos a actualizar"
// @Success      200 {object} map[string]interface{}
// @Router       /api/orden/{id} [put]
func (h *OrdenHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualizarOrdenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		errorStatus(c, err)
		return
	}
	respondStatus(c, http.StatusOK, "Orden actualizada exitosamente", resp)
}

// MarcarCompletada godoc
// @Summary      Marcar orden como fabricada
// @Tags         ordenes
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "ID de la orden"
// @Success      200 {object} map[string]interface{}
// @Router       /api/orden/{id}/completar [patch]
func (h *OrdenHandler) MarcarCompletada(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.MarcarCompletada(c.Request.Context(), id)
	if err != nil {
		errorStatus(c, err)
		return
	}
	respondStatus(c, http.StatusOK, "Orden marcada como fabricada", resp)
}

// Cancelar godoc
// @Summary      Cancelar orden
// @Tags         ordenes
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "ID de la orden"
// @Success      200 {object} map[string]interface{}
// @Router       /api/orden/{id}/cancelar [patch]
func (h *OrdenHandler) Cancelar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Cancelar(c.Request.Context(), id)
	if err != nil {
		errorStatus(c, err)
		return
	}
	respondStatus(c, http.StatusOK, "Orden cancelada", resp)
}

// ConfirmarRecepcion godoc
// @Summary      Confirmar recepción en tienda
// @Description  Cierra la entrega: con faltantes o defectos pasa a "Recibido con problemas" y levanta alertas.
// @Tags         ordenes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path int true "ID de la orden"
// @Param        body body dto.ConfirmarRecepcionRequest true "Faltantes y defectos"
// @Success      200 {object} map[string]interface{}
// @Router       /api/orden/{id}/recepcion [patch]
func (h *OrdenHandler) ConfirmarRecepcion(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ConfirmarRecepcionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ConfirmarRecepcion(c.Request.Context(), id, req)
	if err != nil {
		errorStatus(c, err)
		return
	}
	respondStatus(c, http.StatusOK, "Recepción registrada", resp)
}

// Eliminar godoc
// @Summary      Eliminar orden
// @Tags         ordenes
// @Security     BearerAuth
// @Param        id path int true "ID de la orden"
// @Success      204
// @Router       /api/orden/{id} [delete]
func (h *OrdenHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		errorStatus(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Estadisticas godoc
// @Summary      Estadísticas de órdenes
// @Description  Conteo total y por estado para los dashboards.
// @Tags         ordenes
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]interface{}
// @Router       /api/orden/estadisticas [get]
func (h *OrdenHandler) Estadisticas(c *gin.Context) {
	resp, err := h.svc.Estadisticas(c.Request.Context())
	if err != nil {
		errorStatus(c, err)
		return
	}
	respondStatus(c, http.StatusOK, "Estadísticas de órdenes", resp)
}

// parseID reads the :id path param as uint; writes the 400 response itself.
func parseID(c *gin.Context) (uint, bool) {
	id, ok := parseIDRaw(c)
	if !ok {
		errorStatus(c, apierror.Validation("ID invalido"))
		return 0, false
	}
	return id, true
}

package handler

import (
	"net/http"

	"github.com/4ndreams/GPS-sub001/internal/dto"
	"github.com/4ndreams/GPS-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type CotizacionHandler struct{ svc service.CotizacionService }

func NewCotizacionHandler(svc service.CotizacionService) *CotizacionHandler {
	return &CotizacionHandler{svc: svc}
}

// Crear godoc
// @Summary      Solicitar cotización de puerta a medida
// @Description  Público: cualquier visitante puede pedir una cotización. Nace en "Solicitud Recibida".
// @Tags         cotizaciones
// @Accept       json
// @Produce      json
// @Param        body body dto.CrearCotizacionRequest true "Solicitud"
// @Success      201 {object} map[string]interface{}
// @Router       /api/producto-personalizado [post]
func (h *CotizacionHandler) Crear(c *gin.Context) {
	var req dto.CrearCotizacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		errorSuccess(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "Cotización creada exitosamente", resp)
}

// Listar godoc
// @Summary      Listar cotizaciones
// @Tags         cotizaciones
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]interface{}
// @Router       /api/producto-personalizado [get]
func (h *CotizacionHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		errorSuccess(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Cotizaciones encontradas", resp)
}

// ObtenerPorID godoc
// @Summary      Obtener cotización por id
// @Tags         cotizaciones
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "ID de la cotización"
// @Success      200 {object} map[string]interface{}
// @Router       /api/producto-personalizado/{id} [get]
func (h *CotizacionHandler) ObtenerPorID(c *gin.Context) {
	id, ok := parseIDSuccess(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		errorSuccess(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Cotización encontrada", resp)
}

// Actualizar godoc
// @Summary      Actualizar cotización
// @Description  Aquí la fábrica fija el precio cotizado.
// @Tags         cotizaciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path int true "ID de la cotización"
// @Param        body body dto.ActualizarCotizacionRequest true "Campos a actualizar"
// @Success      200 {object} map[string]interface{}
// @Router       /api/producto-personalizado/{id} [patch]
func (h *CotizacionHandler) Actualizar(c *gin.Context) {
	id, ok := parseIDSuccess(c)
	if !ok {
		return
	}
	var req dto.ActualizarCotizacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		errorSuccess(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Cotización actualizada exitosamente", resp)
}

// CambiarEstado godoc
// @Summary      Cambiar estado de la cotización
// @Description  Toda transición exige que el precio ya esté fijado. Al llegar a "Producto Entregado" se registra la venta y se envía el resumen por correo.
// @Tags         cotizaciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path int true "ID de la cotización"
// @Param        body body dto.CambiarEstadoCotizacionRequest true "Nuevo estado"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]interface{}
// @Router       /api/producto-personalizado/{id}/estado [patch]
func (h *CotizacionHandler) CambiarEstado(c *gin.Context) {
	id, ok := parseIDSuccess(c)
	if !ok {
		return
	}
	var req dto.CambiarEstadoCotizacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CambiarEstado(c.Request.Context(), id, req.Estado)
	if err != nil {
		errorSuccess(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Estado actualizado exitosamente", resp)
}

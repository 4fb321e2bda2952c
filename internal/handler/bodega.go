package handler

import (
	"net/http"

	"github.com/4ndreams/GPS-sub001/internal/dto"
	"github.com/4ndreams/GPS-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type BodegaHandler struct{ svc service.BodegaService }

func NewBodegaHandler(svc service.BodegaService) *BodegaHandler {
	return &BodegaHandler{svc: svc}
}

// Listar godoc
// @Summary      Listar bodegas
// @Tags         bodegas
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]interface{}
// @Router       /api/bodegas [get]
func (h *BodegaHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		errorStatus(c, err)
		return
	}
	respondStatus(c, http.StatusOK, "Bodegas encontradas", resp)
}

// ObtenerPorID godoc
// @Summary      Obtener bodega
// @Tags         bodegas
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "ID de la bodega"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /api/bodegas/{id} [get]
func (h *BodegaHandler) ObtenerPorID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		errorStatus(c, err)
		return
	}
	respondStatus(c, http.StatusOK, "Bodega encontrada", resp)
}

// Crear godoc
// @Summary      Crear bodega
// @Tags         bodegas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearBodegaRequest true "Bodega"
// @Success      201 {object} map[string]interface{}
// @Router       /api/bodegas [post]
func (h *BodegaHandler) Crear(c *gin.Context) {
	var req dto.CrearBodegaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		errorStatus(c, err)
		return
	}
	respondStatus(c, http.StatusCreated, "Bodega creada", resp)
}

// Actualizar godoc
// @Summary      Actualizar bodega
// @Tags         bodegas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path int true "ID de la bodega"
// @Param        body body dto.ActualizarBodegaRequest true "Campos a actualizar"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /api/bodegas/{id} [patch]
func (h *BodegaHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualizarBodegaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		errorStatus(c, err)
		return
	}
	respondStatus(c, http.StatusOK, "Bodega actualizada", resp)
}

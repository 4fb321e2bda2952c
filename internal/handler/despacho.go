package handler

import (
	"net/http"

	"github.com/4ndreams/GPS-sub001/internal/dto"
	"github.com/4ndreams/GPS-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type DespachoHandler struct{ svc service.DespachoService }

func NewDespachoHandler(svc service.DespachoService) *DespachoHandler {
	return &DespachoHandler{svc: svc}
}

// Crear godoc
// @Summary      Crear despacho
// @Description  Agrupa órdenes Fabricadas bajo un transportista y las pasa a "En tránsito" en una sola transacción. Si alguna orden no califica, el lote completo se rechaza sin mutar nada.
// @Tags         despachos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearDespachoRequest true "Órdenes a despachar"
// @Success      201 {object} map[string]interface{}
// @Failure      409 {object} map[string]interface{}
// @Router       /api/despachos [post]
func (h *DespachoHandler) Crear(c *gin.Context) {
	var req dto.CrearDespachoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearDespacho(c.Request.Context(), req)
	if err != nil {
		errorStatus(c, err)
		return
	}
	respondStatus(c, http.StatusCreated, "Despacho creado exitosamente", resp)
}

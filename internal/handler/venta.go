package handler

import (
	"net/http"

	"github.com/4ndreams/GPS-sub001/internal/dto"
	"github.com/4ndreams/GPS-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type VentaHandler struct{ svc service.VentaService }

func NewVentaHandler(svc service.VentaService) *VentaHandler { return &VentaHandler{svc: svc} }

// CrearOrdenCompra godoc
// @Summary      Iniciar checkout web
// @Description  Crea la venta pendiente y devuelve la URL de pago (init_point) del gateway.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Param        body body dto.CrearOrdenCompraRequest true "Producto y cantidad"
// @Success      201 {object} map[string]interface{}
// @Router       /api/orders [post]
func (h *VentaHandler) CrearOrdenCompra(c *gin.Context) {
	var req dto.CrearOrdenCompraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearOrdenCompra(c.Request.Context(), req)
	if err != nil {
		errorSuccess(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "Orden de compra creada", resp)
}

// Webhook godoc
// @Summary      Webhook del gateway de pagos
// @Description  Recibe {type:"payment", data:{id}}. Tipos desconocidos se ignoran con 200. El procesamiento es idempotente: entregas duplicadas no vuelven a aplicar efectos.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Param        body body dto.WebhookRequest true "Notificación del gateway"
// @Success      200 {object} map[string]interface{}
// @Router       /api/orders/webhook [post]
func (h *VentaHandler) Webhook(c *gin.Context) {
	var req dto.WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Malformed webhook bodies get acknowledged too: the gateway retries
		// forever on non-2xx and a broken payload will never get better.
		log.Warn().Err(err).Msg("venta: webhook con payload invalido")
		respondSuccess(c, http.StatusOK, "Webhook recibido", nil)
		return
	}
	if err := h.svc.ProcesarWebhook(c.Request.Context(), req); err != nil {
		// Gateway-side failures return 500 so the gateway retries later.
		errorSuccess(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Webhook procesado", nil)
}

// Listar godoc
// @Summary      Listar ventas
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]interface{}
// @Router       /api/orders [get]
func (h *VentaHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		errorSuccess(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Ventas encontradas", resp)
}

// ObtenerPorID godoc
// @Summary      Obtener venta por id
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "ID de la venta"
// @Success      200 {object} map[string]interface{}
// @Router       /api/orders/{id} [get]
func (h *VentaHandler) ObtenerPorID(c *gin.Context) {
	id, ok := parseIDSuccess(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		errorSuccess(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Venta encontrada", resp)
}

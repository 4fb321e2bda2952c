package dto

import "github.com/shopspring/decimal"

// CrearOrdenCompraRequest inicia un checkout web: crea la venta pendiente y
// pide una preferencia de pago al gateway.
type CrearOrdenCompraRequest struct {
	ProductoID uint `json:"id_producto" validate:"required"`
	Cantidad   int  `json:"cantidad"    validate:"required,min=1"`
}

type OrdenCompraResponse struct {
	VentaID           uint            `json:"venta_id"`
	Total             decimal.Decimal `json:"total"`
	ExternalReference string          `json:"external_reference"`
	InitPoint         string          `json:"init_point"`
}

// WebhookRequest es el payload crudo del gateway de pagos:
// {"type":"payment","data":{"id":"123"}}
type WebhookRequest struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

type VentaResponse struct {
	ID                      uint            `json:"id"`
	Informacion             string          `json:"informacion"`
	Total                   decimal.Decimal `json:"total"`
	Estado                  string          `json:"estado"`
	MetodoPago              *string         `json:"metodo_pago,omitempty"`
	ProductoID              *uint           `json:"id_producto,omitempty"`
	Cantidad                int             `json:"cantidad"`
	ProductoPersonalizadoID *uint           `json:"id_producto_personalizado,omitempty"`
	CreatedAt               string          `json:"created_at"`
}

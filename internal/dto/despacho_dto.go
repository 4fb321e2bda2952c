package dto

// CrearDespachoRequest agrupa órdenes Fabricadas bajo un mismo transportista.
type CrearDespachoRequest struct {
	OrdenesIDs    []uint  `json:"ordenesIds"    validate:"required,min=1,dive,min=1"`
	Transportista string  `json:"transportista" validate:"required"`
	Observaciones *string `json:"observaciones"`
}

// DespachoResponse is an ephemeral aggregate: despachos are not persisted,
// the id is derived from the creation timestamp and the object is only
// available in this response.
type DespachoResponse struct {
	ID            int64           `json:"id"`
	Ordenes       []OrdenResponse `json:"ordenes"`
	Transportista string          `json:"transportista"`
	Observaciones *string         `json:"observaciones"`
	FechaCreacion string          `json:"fecha_creacion"`
	TotalOrdenes  int             `json:"total_ordenes"`
}

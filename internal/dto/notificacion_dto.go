package dto

// NotificacionFilter is bound from the query string of GET /api/notificaciones.
type NotificacionFilter struct {
	Limit        int  `form:"limit,default=50" validate:"min=1,max=500"`
	SoloNoLeidas bool `form:"soloNoLeidas"`
}

type CrearNotificacionRequest struct {
	Tipo                 string   `json:"tipo"    validate:"required"`
	Mensaje              string   `json:"mensaje" validate:"required"`
	OrdenID              *uint    `json:"ordenId"`
	TiendaID             *uint    `json:"tiendaId"`
	ProductosFaltantes   []string `json:"productos_faltantes"`
	ProductosDefectuosos []string `json:"productos_defectuosos"`
	Prioridad            string   `json:"prioridad" validate:"omitempty,oneof=baja media alta crítica"`
}

type ResolverAlertaRequest struct {
	Resolucion string `json:"resolucion" validate:"required,min=5"`
}

type NotificacionResponse struct {
	ID                   uint     `json:"id"`
	Tipo                 string   `json:"tipo"`
	Mensaje              string   `json:"mensaje"`
	OrdenID              *uint    `json:"ordenId"`
	TiendaID             *uint    `json:"tiendaId"`
	ProductosFaltantes   []string `json:"productos_faltantes"`
	ProductosDefectuosos []string `json:"productos_defectuosos"`
	Prioridad            string   `json:"prioridad"`
	Leida                bool     `json:"leida"`
	Resuelta             bool     `json:"resuelta"`
	Resolucion           *string  `json:"resolucion,omitempty"`
	FechaCreacion        string   `json:"fecha_creacion"`
}

package dto

import "time"

// OrdenFilter is bound from the query string of GET /api/orden.
// Estados accepts comma-separated values ("Fabricada,En tránsito").
type OrdenFilter struct {
	Estados string `form:"estados"`
	Tipo    string `form:"tipo" validate:"omitempty,oneof=normal stock"`
}

type CrearOrdenRequest struct {
	Cantidad      int     `json:"cantidad"       validate:"required,min=1"`
	Origen        string  `json:"origen"         validate:"required"`
	Destino       string  `json:"destino"        validate:"required"`
	Prioridad     string  `json:"prioridad"      validate:"omitempty,oneof=Baja Media Alta Urgente"`
	Tipo          string  `json:"tipo"           validate:"omitempty,oneof=normal stock"`
	Observaciones *string `json:"observaciones"`
	ProductoID    uint    `json:"id_producto"    validate:"required"`
	UsuarioID     uint    `json:"id_usuario"     validate:"required"`
	BodegaID      uint    `json:"id_bodega"      validate:"required"`
}

// ActualizarOrdenRequest is a partial update: nil fields keep their current
// value. Estado is intentionally a free string (no sequence enforcement).
type ActualizarOrdenRequest struct {
	Cantidad      *int       `json:"cantidad"      validate:"omitempty,min=1"`
	Origen        *string    `json:"origen"`
	Destino       *string    `json:"destino"`
	Estado        *string    `json:"estado"`
	Prioridad     *string    `json:"prioridad"     validate:"omitempty,oneof=Baja Media Alta Urgente"`
	Transportista *string    `json:"transportista"`
	Observaciones *string    `json:"observaciones"`
	FechaEntrega  *time.Time `json:"fecha_entrega"`
}

// ConfirmarRecepcionRequest reports what arrived at the store. Any non-empty
// list flips the order to "Recibido con problemas" and raises alerts.
type ConfirmarRecepcionRequest struct {
	ProductosFaltantes   []string `json:"productos_faltantes"`
	ProductosDefectuosos []string `json:"productos_defectuosos"`
}

type OrdenResponse struct {
	ID            uint       `json:"id"`
	Cantidad      int        `json:"cantidad"`
	Origen        string     `json:"origen"`
	Destino       string     `json:"destino"`
	FechaEnvio    *time.Time `json:"fecha_envio"`
	FechaEntrega  *time.Time `json:"fecha_entrega"`
	Estado        string     `json:"estado"`
	Prioridad     string     `json:"prioridad"`
	Tipo          string     `json:"tipo"`
	Transportista *string    `json:"transportista"`
	Observaciones *string    `json:"observaciones"`
	Producto      *ProductoResumen `json:"producto,omitempty"`
	UsuarioID     uint       `json:"id_usuario"`
	BodegaID      uint       `json:"id_bodega"`
	CreatedAt     string     `json:"created_at"`
	UpdatedAt     string     `json:"updated_at"`
}

// EstadisticasOrdenes feeds the dashboard counters per role.
type EstadisticasOrdenes struct {
	Total     int64            `json:"total"`
	PorEstado map[string]int64 `json:"por_estado"`
}

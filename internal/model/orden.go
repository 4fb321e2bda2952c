package model

import "time"

// Estados por los que pasa una orden desde fábrica hasta tienda.
// El endpoint de actualización NO valida la secuencia: cualquier caller
// autorizado puede escribir un estado arbitrario (comportamiento heredado
// del flujo operativo — fábrica y tienda corrigen estados a mano).
const (
	EstadoPendiente            = "Pendiente"
	EstadoEnProduccion         = "En producción"
	EstadoFabricada            = "Fabricada"
	EstadoEnTransito           = "En tránsito"
	EstadoRecibido             = "Recibido"
	EstadoRecibidoConProblemas = "Recibido con problemas"
	EstadoCancelado            = "Cancelado"
)

// Orden representa un pedido de producción/despacho que mueve un producto
// desde la fábrica hacia una bodega de tienda.
type Orden struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"`
	Cantidad      int    `gorm:"not null"`
	Origen        string `gorm:"not null"`
	Destino       string `gorm:"not null"`
	FechaEnvio    *time.Time
	FechaEntrega  *time.Time
	Estado        string `gorm:"not null;default:'Pendiente';index"`
	Prioridad     string `gorm:"not null;default:'Media'"` // Baja | Media | Alta | Urgente
	Tipo          string `gorm:"not null;default:'normal';index"` // normal | stock
	Transportista *string
	Observaciones *string
	ProductoID    uint `gorm:"not null;index"`
	UsuarioID     uint `gorm:"not null;index"`
	BodegaID      uint `gorm:"not null;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
	Usuario  *Usuario  `gorm:"foreignKey:UsuarioID"`
	Bodega   *Bodega   `gorm:"foreignKey:BodegaID"`
}

// TableName overrides GORM's pluralization (ordens → ordenes).
func (Orden) TableName() string { return "ordenes" }

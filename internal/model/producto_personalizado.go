package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una cotización de puerta a medida.
const (
	CotizacionSolicitudRecibida = "Solicitud Recibida"
	CotizacionEnProceso         = "En Proceso"
	CotizacionListaParaRetirar  = "Lista para retirar"
	CotizacionProductoEntregado = "Producto Entregado"
	CotizacionCancelada         = "Cancelada"
)

// ProductoPersonalizado es una solicitud de cotización enviada por un
// cliente desde la web. Precio queda nulo hasta que fábrica cotiza; ningún
// cambio de estado procede sin precio.
type ProductoPersonalizado struct {
	ID       uint   `gorm:"primaryKey;autoIncrement"`
	Medidas  string `gorm:"not null"`
	Material string `gorm:"not null"`
	Relleno  string
	Estado   string           `gorm:"not null;default:'Solicitud Recibida';index"`
	Precio   *decimal.Decimal `gorm:"type:decimal(10,2)"`
	Nombre   string           `gorm:"not null"` // contacto del solicitante
	Correo   string           `gorm:"not null"`
	Telefono *string
	Mensaje  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ProductoPersonalizado) TableName() string { return "productos_personalizados" }

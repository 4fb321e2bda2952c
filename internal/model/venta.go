package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta web o de mostrador.
const (
	VentaPendiente = "pendiente"
	VentaPagada    = "pagada"
	VentaEntregada = "entregada"
)

// Venta registra una compra: checkout web de un producto del catálogo o la
// entrega de una cotización a medida.
//
// ProductoPersonalizadoID es una FK real — antes la relación venía
// codificada como string dentro de Informacion, lo que obligaba a buscar
// por coincidencia de texto truncado.
type Venta struct {
	ID                      uint            `gorm:"primaryKey;autoIncrement"`
	Informacion             string          `gorm:"size:150"`
	Total                   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Estado                  string          `gorm:"not null;default:'pendiente';index"`
	MetodoPago              *string
	// ExternalReference es la referencia enviada al gateway de pagos en el
	// checkout; el webhook la usa para ubicar la venta pendiente.
	ExternalReference *string `gorm:"uniqueIndex"`
	// PagoID es el id del pago aprobado en el gateway. Sirve de llave de
	// idempotencia: un webhook duplicado encuentra el pago ya registrado
	// y no vuelve a aplicar efectos.
	PagoID                  *string `gorm:"uniqueIndex"`
	ProductoID              *uint   `gorm:"index"`
	Cantidad                int     `gorm:"not null;default:1"`
	ProductoPersonalizadoID *uint   `gorm:"index"`
	CreatedAt               time.Time
	UpdatedAt               time.Time

	Producto              *Producto              `gorm:"foreignKey:ProductoID"`
	ProductoPersonalizado *ProductoPersonalizado `gorm:"foreignKey:ProductoPersonalizadoID"`
}

func (Venta) TableName() string { return "ventas" }

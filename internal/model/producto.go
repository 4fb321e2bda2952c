package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto es un mueble del catálogo (puertas, principalmente).
// Stock nunca queda negativo: toda escritura pasa por el chequeo
// newStock >= 0 en servicio o por el guard SQL del repositorio.
type Producto struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"`
	Nombre      string          `gorm:"index;not null"`
	Precio      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock       int             `gorm:"not null;default:0"`
	Descripcion *string
	Dimensiones *string
	TipoID      uint `gorm:"index"`
	MaterialID  uint `gorm:"index"`
	RellenoID   uint `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Tipo     *Tipo     `gorm:"foreignKey:TipoID"`
	Material *Material `gorm:"foreignKey:MaterialID"`
	Relleno  *Relleno  `gorm:"foreignKey:RellenoID"`
	Imagenes []Imagen  `gorm:"foreignKey:ProductoID"`
}

// Tipo clasifica el producto (puerta enchapada, terciada, etc.).
type Tipo struct {
	ID     uint   `gorm:"primaryKey;autoIncrement"`
	Nombre string `gorm:"uniqueIndex;not null"`
}

func (Tipo) TableName() string { return "tipos" }

type Material struct {
	ID     uint   `gorm:"primaryKey;autoIncrement"`
	Nombre string `gorm:"uniqueIndex;not null"`
}

func (Material) TableName() string { return "materiales" }

type Relleno struct {
	ID     uint   `gorm:"primaryKey;autoIncrement"`
	Nombre string `gorm:"uniqueIndex;not null"`
}

func (Relleno) TableName() string { return "rellenos" }

// Imagen es una foto de producto subida al object storage; URL pública.
type Imagen struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	ProductoID uint   `gorm:"not null;index"`
	Ruta       string `gorm:"not null"` // path dentro del bucket
	URL        string `gorm:"not null"`
	CreatedAt  time.Time
}

func (Imagen) TableName() string { return "imagenes" }

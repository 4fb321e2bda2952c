package model

import "time"

// Bodega es un punto de almacenamiento: la bodega de fábrica o la trastienda
// de un local de venta.
type Bodega struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Nombre    string `gorm:"not null"`
	Direccion string `gorm:"not null"`
	Comuna    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

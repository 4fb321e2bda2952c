package dto

import "github.com/shopspring/decimal"

type CrearCotizacionRequest struct {
	Medidas  string  `json:"medidas"  validate:"required"`
	Material string  `json:"material" validate:"required"`
	Relleno  string  `json:"relleno"`
	Nombre   string  `json:"nombre"   validate:"required"`
	Correo   string  `json:"correo"   validate:"required,email"`
	Telefono *string `json:"telefono"`
	Mensaje  *string `json:"mensaje"`
}

type ActualizarCotizacionRequest struct {
	Medidas  *string          `json:"medidas"`
	Material *string          `json:"material"`
	Relleno  *string          `json:"relleno"`
	Precio   *decimal.Decimal `json:"precio" validate:"omitempty,gt=0"`
}

type CambiarEstadoCotizacionRequest struct {
	Estado string `json:"estado" validate:"required,oneof='Solicitud Recibida' 'En Proceso' 'Lista para retirar' 'Producto Entregado' 'Cancelada'"`
}

type CotizacionResponse struct {
	ID       uint             `json:"id"`
	Medidas  string           `json:"medidas"`
	Material string           `json:"material"`
	Relleno  string           `json:"relleno"`
	Estado   string           `json:"estado"`
	Precio   *decimal.Decimal `json:"precio"`
	Nombre   string           `json:"nombre"`
	Correo   string           `json:"correo"`
	Telefono *string          `json:"telefono,omitempty"`
	Mensaje  *string          `json:"mensaje,omitempty"`
	CreatedAt string          `json:"created_at"`
}

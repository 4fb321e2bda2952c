package dto

import "github.com/shopspring/decimal"

type ProductoFilter struct {
	Nombre     string `form:"nombre"`
	TipoID     uint   `form:"tipo"`
	MaterialID uint   `form:"material"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CrearProductoRequest struct {
	Nombre      string          `json:"nombre"      validate:"required"`
	Precio      decimal.Decimal `json:"precio"      validate:"required,gt=0"`
	Stock       int             `json:"stock"       validate:"min=0"`
	Descripcion *string         `json:"descripcion"`
	Dimensiones *string         `json:"dimensiones"`
	TipoID      uint            `json:"id_tipo"     validate:"required"`
	MaterialID  uint            `json:"id_material" validate:"required"`
	RellenoID   uint            `json:"id_relleno"`
}

type ActualizarProductoRequest struct {
	Nombre      *string          `json:"nombre"`
	Precio      *decimal.Decimal `json:"precio"      validate:"omitempty,gt=0"`
	Stock       *int             `json:"stock"       validate:"omitempty,min=0"`
	Descripcion *string          `json:"descripcion"`
	Dimensiones *string          `json:"dimensiones"`
	TipoID      *uint            `json:"id_tipo"`
	MaterialID  *uint            `json:"id_material"`
	RellenoID   *uint            `json:"id_relleno"`
}

// ProductoResumen is the embedded product shape inside orden responses.
type ProductoResumen struct {
	ID     uint            `json:"id"`
	Nombre string          `json:"nombre"`
	Precio decimal.Decimal `json:"precio"`
}

type ImagenResponse struct {
	ID  uint   `json:"id"`
	URL string `json:"url"`
}

type ProductoResponse struct {
	ID          uint             `json:"id"`
	Nombre      string           `json:"nombre"`
	Precio      decimal.Decimal  `json:"precio"`
	Stock       int              `json:"stock"`
	Descripcion *string          `json:"descripcion"`
	Dimensiones *string          `json:"dimensiones"`
	Tipo        string           `json:"tipo,omitempty"`
	Material    string           `json:"material,omitempty"`
	Relleno     string           `json:"relleno,omitempty"`
	Imagenes    []ImagenResponse `json:"imagenes"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

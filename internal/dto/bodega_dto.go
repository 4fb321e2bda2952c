package dto

// CrearBodegaRequest registra un punto de almacenamiento (fábrica o tienda).
type CrearBodegaRequest struct {
	Nombre    string `json:"nombre"    validate:"required"`
	Direccion string `json:"direccion" validate:"required"`
	Comuna    string `json:"comuna"`
}

type ActualizarBodegaRequest struct {
	Nombre    *string `json:"nombre"`
	Direccion *string `json:"direccion"`
	Comuna    *string `json:"comuna"`
}

type BodegaResponse struct {
	ID        uint   `json:"id"`
	Nombre    string `json:"nombre"`
	Direccion string `json:"direccion"`
	Comuna    string `json:"comuna"`
}

package handler

import (
	"io"
	"net/http"

	"github.com/4ndreams/GPS-sub001/internal/apierror"
	"github.com/4ndreams/GPS-sub001/internal/dto"
	"github.com/4ndreams/GPS-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// maxImagenBytes caps product photo uploads at 5 MiB.
const maxImagenBytes = 5 << 20

type ProductoHandler struct{ svc service.ProductoService }

func NewProductoHandler(svc service.ProductoService) *ProductoHandler {
	return &ProductoHandler{svc: svc}
}

// Listar godoc
// @Summary      Listar productos
// @Tags         productos
// @Produce      json
// @Param        nombre   query string false "Filtro por nombre (parcial)"
// @Param        tipo     query int    false "ID de tipo"
// @Param        material query int    false "ID de material"
// @Param        page     query int    false "Página (default 1)"
// @Param        limit    query int    false "Registros por página (default 50)"
// @Success      200 {object} map[string]interface{}
// @Router       /api/products [get]
func (h *ProductoHandler) Listar(c *gin.Context) {
	var filter dto.ProductoFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		errorSuccess(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Productos encontrados", resp)
}

// ObtenerPorID godoc
// @Summary      Obtener producto por id
// @Tags         productos
// @Produce      json
// @Param        id path int true "ID del producto"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /api/products/{id} [get]
func (h *ProductoHandler) ObtenerPorID(c *gin.Context) {
	id, ok := parseIDSuccess(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		errorSuccess(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Producto encontrado", resp)
}

// Crear godoc
// @Summary      Crear producto
// @Tags         productos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearProductoRequest true "Producto"
// @Success      201 {object} map[string]interface{}
// @Router       /api/products [post]
func (h *ProductoHandler) Crear(c *gin.Context) {
	var req dto.CrearProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		errorSuccess(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "Producto creado exitosamente", resp)
}

// Actualizar godoc
// @Summary      Actualizar producto
// @Description  Actualización parcial. El stock nunca puede quedar negativo.
// @Tags         productos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path int true "ID del producto"
// @Param        body body dto.ActualizarProductoRequest true "Campos a actualizar"
// @Success      200 {object} map[string]interface{}
// @Router       /api/products/{id} [patch]
func (h *ProductoHandler) Actualizar(c *gin.Context) {
	id, ok := parseIDSuccess(c)
	if !ok {
		return
	}
	var req dto.ActualizarProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		errorSuccess(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Producto actualizado exitosamente", resp)
}

// Eliminar godoc
// @Summary      Eliminar producto
// @Tags         productos
// @Security     BearerAuth
// @Param        id path int true "ID del producto"
// @Success      204
// @Router       /api/products/{id} [delete]
func (h *ProductoHandler) Eliminar(c *gin.Context) {
	id, ok := parseIDSuccess(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		errorSuccess(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SubirImagen godoc
// @Summary      Subir imagen de producto
// @Description  Recibe multipart/form-data con el campo "imagen" y la sube al bucket de objetos.
// @Tags         productos
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id     path     int  true "ID del producto"
// @Param        imagen formData file true "Archivo de imagen"
// @Success      201 {object} map[string]interface{}
// @Router       /api/products/{id}/imagenes [post]
func (h *ProductoHandler) SubirImagen(c *gin.Context) {
	id, ok := parseIDSuccess(c)
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("imagen")
	if err != nil {
		errorSuccess(c, apierror.Validation("Falta el archivo 'imagen'"))
		return
	}
	if fileHeader.Size > maxImagenBytes {
		errorSuccess(c, apierror.Validation("La imagen supera el tamaño máximo de 5MB"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		errorSuccess(c, apierror.Internal(err))
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		errorSuccess(c, apierror.Internal(err))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	resp, err := h.svc.SubirImagen(c.Request.Context(), id, fileHeader.Filename, contentType, data)
	if err != nil {
		errorSuccess(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "Imagen subida exitosamente", resp)
}

// parseIDSuccess is parseID for the {success, message, data} handler family.
func parseIDSuccess(c *gin.Context) (uint, bool) {
	id, ok := parseIDRaw(c)
	if !ok {
		errorSuccess(c, apierror.Validation("ID invalido"))
		return 0, false
	}
	return id, true
}

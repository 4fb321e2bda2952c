package service

import (
	"context"

	"github.com/4ndreams/GPS-sub001/internal/apierror"
	"github.com/4ndreams/GPS-sub001/internal/dto"
	"github.com/4ndreams/GPS-sub001/internal/infra"
	"github.com/4ndreams/GPS-sub001/internal/model"
	"github.com/4ndreams/GPS-sub001/internal/repository"
)

// ProductoService maneja el catálogo de muebles.
type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id uint, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id uint) error
	SubirImagen(ctx context.Context, id uint, filename, contentType string, data []byte) (*dto.ImagenResponse, error)
}

type productoService struct {
	repo    repository.ProductoRepository
	storage *infra.StorageClient
}

func NewProductoService(repo repository.ProductoRepository, storage *infra.StorageClient) ProductoService {
	return &productoService{repo: repo, storage: storage}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	p := &model.Producto{
		Nombre:      req.Nombre,
		Precio:      req.Precio,
		Stock:       req.Stock,
		Descripcion: req.Descripcion,
		Dimensiones: req.Dimensiones,
		TipoID:      req.TipoID,
		MaterialID:  req.MaterialID,
		RellenoID:   req.RellenoID,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, apierror.Internal(err)
	}
	return productoToResponse(p), nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uint) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Producto no encontrado")
	}
	return productoToResponse(p), nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	items := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		items = append(items, *productoToResponse(&productos[i]))
	}
	return &dto.ProductoListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uint, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Producto no encontrado")
	}

	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Precio != nil {
		p.Precio = *req.Precio
	}
	if req.Stock != nil {
		// Stock nunca negativo.
		if *req.Stock < 0 {
			return nil, apierror.Validation("El stock no puede ser negativo")
		}
		p.Stock = *req.Stock
	}
	if req.Descripcion != nil {
		p.Descripcion = req.Descripcion
	}
	if req.Dimensiones != nil {
		p.Dimensiones = req.Dimensiones
	}
	if req.TipoID != nil {
		p.TipoID = *req.TipoID
	}
	if req.MaterialID != nil {
		p.MaterialID = *req.MaterialID
	}
	if req.RellenoID != nil {
		p.RellenoID = *req.RellenoID
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, apierror.Internal(err)
	}
	return productoToResponse(p), nil
}

func (s *productoService) Eliminar(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("Producto no encontrado")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apierror.Internal(err)
	}
	return nil
}

func (s *productoService) SubirImagen(ctx context.Context, id uint, filename, contentType string, data []byte) (*dto.ImagenResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, apierror.NotFound("Producto no encontrado")
	}
	path, url, err := s.storage.SubirImagenProducto(id, filename, contentType, data)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	img := &model.Imagen{ProductoID: id, Ruta: path, URL: url}
	if err := s.repo.AddImagen(ctx, img); err != nil {
		return nil, apierror.Internal(err)
	}
	return &dto.ImagenResponse{ID: img.ID, URL: img.URL}, nil
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	resp := &dto.ProductoResponse{
		ID:          p.ID,
		Nombre:      p.Nombre,
		Precio:      p.Precio,
		Stock:       p.Stock,
		Descripcion: p.Descripcion,
		Dimensiones: p.Dimensiones,
		Imagenes:    make([]dto.ImagenResponse, 0, len(p.Imagenes)),
	}
	if p.Tipo != nil {
		resp.Tipo = p.Tipo.Nombre
	}
	if p.Material != nil {
		resp.Material = p.Material.Nombre
	}
	if p.Relleno != nil {
		resp.Relleno = p.Relleno.Nombre
	}
	for _, img := range p.Imagenes {
		resp.Imagenes = append(resp.Imagenes, dto.ImagenResponse{ID: img.ID, URL: img.URL})
	}
	return resp
}

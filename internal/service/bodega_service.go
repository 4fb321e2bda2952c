package service

import (
	"context"

	"github.com/4ndreams/GPS-sub001/internal/apierror"
	"github.com/4ndreams/GPS-sub001/internal/dto"
	"github.com/4ndreams/GPS-sub001/internal/model"
	"github.com/4ndreams/GPS-sub001/internal/repository"
)

// BodegaService administra los puntos de almacenamiento que las órdenes
// referencian como destino.
type BodegaService interface {
	Crear(ctx context.Context, req dto.CrearBodegaRequest) (*dto.BodegaResponse, error)
	Listar(ctx context.Context) ([]dto.BodegaResponse, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.BodegaResponse, error)
	Actualizar(ctx context.Context, id uint, req dto.ActualizarBodegaRequest) (*dto.BodegaResponse, error)
}

type bodegaService struct {
	repo repository.BodegaRepository
}

func NewBodegaService(repo repository.BodegaRepository) BodegaService {
	return &bodegaService{repo: repo}
}

func (s *bodegaService) Crear(ctx context.Context, req dto.CrearBodegaRequest) (*dto.BodegaResponse, error) {
	b := &model.Bodega{
		Nombre:    req.Nombre,
		Direccion: req.Direccion,
		Comuna:    req.Comuna,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, apierror.Internal(err)
	}
	return bodegaToResponse(b), nil
}

func (s *bodegaService) Listar(ctx context.Context) ([]dto.BodegaResponse, error) {
	bs, err := s.repo.List(ctx)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	resp := make([]dto.BodegaResponse, 0, len(bs))
	for i := range bs {
		resp = append(resp, *bodegaToResponse(&bs[i]))
	}
	return resp, nil
}

func (s *bodegaService) ObtenerPorID(ctx context.Context, id uint) (*dto.BodegaResponse, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Bodega no encontrada")
	}
	return bodegaToResponse(b), nil
}

func (s *bodegaService) Actualizar(ctx context.Context, id uint, req dto.ActualizarBodegaRequest) (*dto.BodegaResponse, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Bodega no encontrada")
	}
	if req.Nombre != nil {
		b.Nombre = *req.Nombre
	}
	if req.Direccion != nil {
		b.Direccion = *req.Direccion
	}
	if req.Comuna != nil {
		b.Comuna = *req.Comuna
	}
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, apierror.Internal(err)
	}
	return bodegaToResponse(b), nil
}

func bodegaToResponse(b *model.Bodega) *dto.BodegaResponse {
	return &dto.BodegaResponse{
		ID:        b.ID,
		Nombre:    b.Nombre,
		Direccion: b.Direccion,
		Comuna:    b.Comuna,
	}
}

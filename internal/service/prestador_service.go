package service

import (
	"context"

	"frtransportes/internal/dto"
	"frtransportes/internal/model"
	"frtransportes/internal/repository"

	"github.com/google/uuid"
)

type PrestadorService interface {
	Criar(ctx context.Context, req dto.CriarPrestadorRequest) (*dto.PrestadorResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.PrestadorResponse, error)
	Listar(ctx context.Context) ([]dto.PrestadorResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarPrestadorRequest) (*dto.PrestadorResponse, error)
	Desativar(ctx context.Context, id uuid.UUID) error
}

type prestadorService struct {
	repo repository.PrestadorRepository
}

func NewPrestadorService(repo repository.PrestadorRepository) PrestadorService {
	return &prestadorService{repo: repo}
}

func (s *prestadorService) Criar(ctx context.Context, req dto.CriarPrestadorRequest) (*dto.PrestadorResponse, error) {
	p := &model.Prestador{
		Nome:               req.Nome,
		PercentualComissao: req.PercentualComissao,
		Telefone:           req.Telefone,
		Email:              req.Email,
		ChavePix:           req.ChavePix,
		Veiculo:            req.Veiculo,
		Ativo:              true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return prestadorToResponse(p), nil
}

func (s *prestadorService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.PrestadorResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, naoEncontrado("prestador")
	}
	return prestadorToResponse(p), nil
}

func (s *prestadorService) Listar(ctx context.Context) ([]dto.PrestadorResponse, error) {
	ps, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PrestadorResponse, 0, len(ps))
	for i := range ps {
		out = append(out, *prestadorToResponse(&ps[i]))
	}
	return out, nil
}

func (s *prestadorService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarPrestadorRequest) (*dto.PrestadorResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, naoEncontrado("prestador")
	}
	if req.Nome != nil {
		p.Nome = *req.Nome
	}
	// Commission changes apply to future orders only — already-created
	// commission entries keep the value computed at order time.
	if req.PercentualComissao != nil {
		p.PercentualComissao = *req.PercentualComissao
	}
	if req.Telefone != nil {
		p.Telefone = req.Telefone
	}
	if req.Email != nil {
		p.Email = req.Email
	}
	if req.ChavePix != nil {
		p.ChavePix = req.ChavePix
	}
	if req.Veiculo != nil {
		p.Veiculo = req.Veiculo
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return prestadorToResponse(p), nil
}

func (s *prestadorService) Desativar(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func prestadorToResponse(p *model.Prestador) *dto.PrestadorResponse {
	return &dto.PrestadorResponse{
		ID:                 p.ID.String(),
		Nome:               p.Nome,
		PercentualComissao: p.PercentualComissao,
		Telefone:           p.Telefone,
		Email:              p.Email,
		ChavePix:           p.ChavePix,
		Veiculo:            p.Veiculo,
		Ativo:              p.Ativo,
	}
}

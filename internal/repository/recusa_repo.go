package repository

import (
	"context"

	"frtransportes/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecusaRepository is append-only — refusals are never updated or deleted.
type RecusaRepository interface {
	Create(ctx context.Context, rec *model.RecusaServico) error
	ListByServico(ctx context.Context, servicoID uuid.UUID) ([]model.RecusaServico, error)
	ListByPrestador(ctx context.Context, prestadorID uuid.UUID) ([]model.RecusaServico, error)
}

type recusaRepo struct{ db *gorm.DB }

func NewRecusaRepository(db *gorm.DB) RecusaRepository { return &recusaRepo{db: db} }

func (r *recusaRepo) Create(ctx context.Context, rec *model.RecusaServico) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *recusaRepo) ListByServico(ctx context.Context, servicoID uuid.UUID) ([]model.RecusaServico, error) {
	var recs []model.RecusaServico
	err := r.db.WithContext(ctx).Where("servico_id = ?", servicoID).Order("created_at DESC").Find(&recs).Error
	return recs, err
}

func (r *recusaRepo) ListByPrestador(ctx context.Context, prestadorID uuid.UUID) ([]model.RecusaServico, error) {
	var recs []model.RecusaServico
	err := r.db.WithContext(ctx).Where("prestador_id = ?", prestadorID).Order("created_at DESC").Find(&recs).Error
	return recs, err
}

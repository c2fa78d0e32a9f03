package repository

import (
	"context"

	"frtransportes/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuitacaoRepository has no Delete on purpose: settlement records are an
// append-only audit trail, only the Revertida flag is ever mutated.
type QuitacaoRepository interface {
	Create(ctx context.Context, q *model.QuitacaoPrestador) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.QuitacaoPrestador, error)
	Update(ctx context.Context, q *model.QuitacaoPrestador) error
	ListByPrestador(ctx context.Context, prestadorID uuid.UUID) ([]model.QuitacaoPrestador, error)
}

type quitacaoRepo struct{ db *gorm.DB }

func NewQuitacaoRepository(db *gorm.DB) QuitacaoRepository { return &quitacaoRepo{db: db} }

func (r *quitacaoRepo) Create(ctx context.Context, q *model.QuitacaoPrestador) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *quitacaoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.QuitacaoPrestador, error) {
	var q model.QuitacaoPrestador
	err := r.db.WithContext(ctx).First(&q, id).Error
	return &q, err
}

func (r *quitacaoRepo) Update(ctx context.Context, q *model.QuitacaoPrestador) error {
	return r.db.WithContext(ctx).Save(q).Error
}

func (r *quitacaoRepo) ListByPrestador(ctx context.Context, prestadorID uuid.UUID) ([]model.QuitacaoPrestador, error) {
	var qs []model.QuitacaoPrestador
	err := r.db.WithContext(ctx).
		Where("prestador_id = ?", prestadorID).
		Order("created_at DESC").
		Find(&qs).Error
	return qs, err
}

package repository

import (
	"context"

	"frtransportes/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PrestadorRepository interface {
	Create(ctx context.Context, p *model.Prestador) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Prestador, error)
	List(ctx context.Context) ([]model.Prestador, error)
	Update(ctx context.Context, p *model.Prestador) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type prestadorRepo struct{ db *gorm.DB }

func NewPrestadorRepository(db *gorm.DB) PrestadorRepository { return &prestadorRepo{db: db} }

func (r *prestadorRepo) Create(ctx context.Context, p *model.Prestador) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *prestadorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Prestador, error) {
	var p model.Prestador
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *prestadorRepo) List(ctx context.Context) ([]model.Prestador, error) {
	var prestadores []model.Prestador
	err := r.db.WithContext(ctx).Where("ativo = true").Order("nome ASC").Find(&prestadores).Error
	return prestadores, err
}

func (r *prestadorRepo) Update(ctx context.Context, p *model.Prestador) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *prestadorRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Prestador{}).Where("id = ?", id).Update("ativo", false).Error
}

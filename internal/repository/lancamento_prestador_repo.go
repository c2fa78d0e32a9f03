package repository

import (
	"context"
	"time"

	"frtransportes/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LancamentoPrestadorRepository interface {
	Create(ctx context.Context, tx *gorm.DB, l *model.LancamentoPrestador) error
	BulkCreate(ctx context.Context, ls []model.LancamentoPrestador) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.LancamentoPrestador, error)
	FindByServicoID(ctx context.Context, servicoID uuid.UUID) ([]model.LancamentoPrestador, error)
	Update(ctx context.Context, l *model.LancamentoPrestador) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByServicoID(ctx context.Context, tx *gorm.DB, servicoID uuid.UUID) error
	// ListByPrestadorPeriodo preloads the originating Servico so the
	// aggregator can drop commissions of cancelled orders.
	ListByPrestadorPeriodo(ctx context.Context, prestadorID uuid.UUID, inicio, fim time.Time) ([]model.LancamentoPrestador, error)
}

type lancamentoPrestadorRepo struct{ db *gorm.DB }

func NewLancamentoPrestadorRepository(db *gorm.DB) LancamentoPrestadorRepository {
	return &lancamentoPrestadorRepo{db: db}
}

func (r *lancamentoPrestadorRepo) Create(ctx context.Context, tx *gorm.DB, l *model.LancamentoPrestador) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Create(l).Error
}

func (r *lancamentoPrestadorRepo) BulkCreate(ctx context.Context, ls []model.LancamentoPrestador) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&ls).Error
	})
}

func (r *lancamentoPrestadorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.LancamentoPrestador, error) {
	var l model.LancamentoPrestador
	err := r.db.WithContext(ctx).First(&l, id).Error
	return &l, err
}

func (r *lancamentoPrestadorRepo) FindByServicoID(ctx context.Context, servicoID uuid.UUID) ([]model.LancamentoPrestador, error) {
	var ls []model.LancamentoPrestador
	err := r.db.WithContext(ctx).Where("servico_id = ?", servicoID).Find(&ls).Error
	return ls, err
}

func (r *lancamentoPrestadorRepo) Update(ctx context.Context, l *model.LancamentoPrestador) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *lancamentoPrestadorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.LancamentoPrestador{}, id).Error
}

func (r *lancamentoPrestadorRepo) DeleteByServicoID(ctx context.Context, tx *gorm.DB, servicoID uuid.UUID) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Where("servico_id = ?", servicoID).Delete(&model.LancamentoPrestador{}).Error
}

func (r *lancamentoPrestadorRepo) ListByPrestadorPeriodo(ctx context.Context, prestadorID uuid.UUID, inicio, fim time.Time) ([]model.LancamentoPrestador, error) {
	var ls []model.LancamentoPrestador
	err := r.db.WithContext(ctx).
		Preload("Servico").
		Where("prestador_id = ? AND data_lancamento >= ? AND data_lancamento <= ?", prestadorID, inicio, fim).
		Order("data_lancamento ASC").
		Find(&ls).Error
	return ls, err
}

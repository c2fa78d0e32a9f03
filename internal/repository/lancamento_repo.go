package repository

import (
	"context"
	"time"

	"frtransportes/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LancamentoRepository interface {
	Create(ctx context.Context, tx *gorm.DB, l *model.Lancamento) error
	BulkCreate(ctx context.Context, ls []model.Lancamento) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Lancamento, error)
	FindByServicoID(ctx context.Context, servicoID uuid.UUID) ([]model.Lancamento, error)
	Update(ctx context.Context, l *model.Lancamento) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByServicoID(ctx context.Context, tx *gorm.DB, servicoID uuid.UUID) error
	ListByPeriodo(ctx context.Context, inicio, fim time.Time) ([]model.Lancamento, error)
	DB() *gorm.DB
}

type lancamentoRepo struct{ db *gorm.DB }

func NewLancamentoRepository(db *gorm.DB) LancamentoRepository { return &lancamentoRepo{db: db} }

func (r *lancamentoRepo) DB() *gorm.DB { return r.db }

func (r *lancamentoRepo) Create(ctx context.Context, tx *gorm.DB, l *model.Lancamento) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Create(l).Error
}

// BulkCreate inserts all entries in one transaction so an installment run
// never leaves a parent without its siblings silently.
func (r *lancamentoRepo) BulkCreate(ctx context.Context, ls []model.Lancamento) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&ls).Error
	})
}

func (r *lancamentoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Lancamento, error) {
	var l model.Lancamento
	err := r.db.WithContext(ctx).First(&l, id).Error
	return &l, err
}

func (r *lancamentoRepo) FindByServicoID(ctx context.Context, servicoID uuid.UUID) ([]model.Lancamento, error) {
	var ls []model.Lancamento
	err := r.db.WithContext(ctx).Where("servico_id = ?", servicoID).Find(&ls).Error
	return ls, err
}

func (r *lancamentoRepo) Update(ctx context.Context, l *model.Lancamento) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *lancamentoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Lancamento{}, id).Error
}

func (r *lancamentoRepo) DeleteByServicoID(ctx context.Context, tx *gorm.DB, servicoID uuid.UUID) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Where("servico_id = ?", servicoID).Delete(&model.Lancamento{}).Error
}

func (r *lancamentoRepo) ListByPeriodo(ctx context.Context, inicio, fim time.Time) ([]model.Lancamento, error) {
	var ls []model.Lancamento
	err := r.db.WithContext(ctx).
		Where("data_lancamento >= ? AND data_lancamento <= ?", inicio, fim).
		Order("data_lancamento ASC").
		Find(&ls).Error
	return ls, err
}

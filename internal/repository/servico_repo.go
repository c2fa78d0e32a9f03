package repository

import (
	"context"
	"time"

	"frtransportes/internal/dto"
	"frtransportes/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServicoRepository interface {
	Create(ctx context.Context, tx *gorm.DB, s *model.Servico) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Servico, error)
	Update(ctx context.Context, s *model.Servico) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	List(ctx context.Context, filter dto.ServicoFilter) ([]model.Servico, int64, error)
	// NextNumero draws the next order number from the authoritative Postgres
	// sequence — one counter, no scan-the-list race between clients.
	NextNumero(ctx context.Context) (int64, error)
	// ListNumeros returns every raw order number for the degraded-mode
	// fallback when the sequence is unavailable.
	ListNumeros(ctx context.Context) ([]string, error)
	// ListAtrasados returns scheduled in-flight orders whose scheduled time
	// has already passed.
	ListAtrasados(ctx context.Context, agora time.Time, limit int) ([]model.Servico, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type servicoRepo struct{ db *gorm.DB }

func NewServicoRepository(db *gorm.DB) ServicoRepository { return &servicoRepo{db: db} }

func (r *servicoRepo) DB() *gorm.DB { return r.db }

func (r *servicoRepo) Create(ctx context.Context, tx *gorm.DB, s *model.Servico) error {
	return tx.WithContext(ctx).Create(s).Error
}

func (r *servicoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Servico, error) {
	var s model.Servico
	err := r.db.WithContext(ctx).Preload("Paradas", func(db *gorm.DB) *gorm.DB {
		return db.Order("ordem ASC")
	}).First(&s, id).Error
	return &s, err
}

func (r *servicoRepo) Update(ctx context.Context, s *model.Servico) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *servicoRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	if err := db.WithContext(ctx).Where("servico_id = ?", id).Delete(&model.Parada{}).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Delete(&model.Servico{}, id).Error
}

func (r *servicoRepo) List(ctx context.Context, filter dto.ServicoFilter) ([]model.Servico, int64, error) {
	var servicos []model.Servico
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Servico{})

	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.PrestadorID != nil {
		q = q.Where("prestador_id = ?", *filter.PrestadorID)
	}
	if filter.Data != "" {
		q = q.Where("DATE(created_at) = ?", filter.Data)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Paradas", func(db *gorm.DB) *gorm.DB {
		return db.Order("ordem ASC")
	}).
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&servicos).Error

	return servicos, total, err
}

func (r *servicoRepo) NextNumero(ctx context.Context) (int64, error) {
	var num int64
	err := r.db.WithContext(ctx).Raw("SELECT nextval('servicos_numero_seq')").Scan(&num).Error
	return num, err
}

func (r *servicoRepo) ListAtrasados(ctx context.Context, agora time.Time, limit int) ([]model.Servico, error) {
	var servicos []model.Servico
	err := r.db.WithContext(ctx).
		Where("agendado = ? AND agendado_para < ?", true, agora).
		Where("status IN ?", []string{
			string(model.StatusAguardandoAceite),
			string(model.StatusAceito),
			string(model.StatusColetado),
		}).
		Order("agendado_para ASC").
		Limit(limit).
		Find(&servicos).Error
	return servicos, err
}

func (r *servicoRepo) ListNumeros(ctx context.Context) ([]string, error) {
	var numeros []string
	err := r.db.WithContext(ctx).Model(&model.Servico{}).Pluck("numero", &numeros).Error
	return numeros, err
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// RecusaServico records a provider refusing an order. Append-only: refusals
// are never updated or deleted, and refusing never deletes the order itself.
type RecusaServico struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ServicoID   uuid.UUID `gorm:"type:uuid;index;not null"`
	PrestadorID uuid.UUID `gorm:"type:uuid;index;not null"`
	Motivo      string    `gorm:"not null"`
	CreatedAt   time.Time
}

func (RecusaServico) TableName() string { return "recusas_servico" }

package model

import (
	"time"

	"github.com/google/uuid"
)

// QuitacaoPrestador is the audit record of a period settlement: the balance
// that was zeroed, every ledger entry folded into it, and the generated
// zeroing payment entry. Records are never deleted — reverting only flips
// Revertida and removes the payment entry.
//
// Reverting deliberately does NOT restore the folded entries' payment
// statuses; settlement is a coarse zeroing operation.
type QuitacaoPrestador struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PrestadorID uuid.UUID `gorm:"type:uuid;index;not null"`

	PeriodoInicio time.Time `gorm:"not null"`
	PeriodoFim    time.Time `gorm:"not null"`

	SaldoQuitadoCentavos int64 `gorm:"not null"`

	// LancamentoIDs are the provider ledger entries whose paid amounts made
	// up the settled balance.
	LancamentoIDs []string `gorm:"serializer:json;type:jsonb"`

	// LancamentoPagamentoID points at the generated zeroing payment entry;
	// nil after the settlement has been reverted.
	LancamentoPagamentoID *uuid.UUID `gorm:"type:uuid"`

	Revertida   bool `gorm:"not null;default:false"`
	RevertidaEm *time.Time

	QuitadoPor uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (QuitacaoPrestador) TableName() string { return "quitacoes_prestador" }

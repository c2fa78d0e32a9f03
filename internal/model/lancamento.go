package model

import (
	"time"

	"github.com/google/uuid"
)

// Lancamento is one posted line in the company-wide financial ledger.
//
// ValorCentavos holds the unsigned magnitude; the effective sign comes from
// Tipo (comissao/receita add, the rest deduct). Entries linked to an order
// are zeroed — not deleted — when the order is cancelled, and restored on
// reactivation, so history always survives cancellation.
type Lancamento struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Tipo            TipoLancamento  `gorm:"type:varchar(20);not null;index"`
	Descricao       string          `gorm:"not null"`
	ValorCentavos   int64           `gorm:"not null"`
	StatusPagamento StatusPagamento `gorm:"type:varchar(20);not null;default:'pendente'"`
	MetodoPagamento *MetodoPagamento `gorm:"type:varchar(30)"`
	DataLancamento  time.Time       `gorm:"not null;index"`
	DataVencimento  *time.Time

	// ServicoID back-references the originating order, when there is one.
	ServicoID   *uuid.UUID `gorm:"type:uuid;index"`
	PrestadorID *uuid.UUID `gorm:"type:uuid;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValorAssinadoCentavos is the entry's signed contribution to a balance.
func (l *Lancamento) ValorAssinadoCentavos() int64 {
	return l.Tipo.Sinal() * l.ValorCentavos
}

// LancamentoPrestador is a provider-scoped ledger line. It mirrors the
// company ledger shape plus IncluirNoFinanceiro, which controls whether the
// entry also counts toward the company-wide financial rollup.
type LancamentoPrestador struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PrestadorID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	Tipo            TipoLancamento  `gorm:"type:varchar(20);not null;index"`
	Descricao       string          `gorm:"not null"`
	ValorCentavos   int64           `gorm:"not null"`
	StatusPagamento StatusPagamento `gorm:"type:varchar(20);not null;default:'pendente'"`
	DataLancamento  time.Time       `gorm:"not null;index"`
	DataVencimento  *time.Time

	ServicoID *uuid.UUID `gorm:"type:uuid;index"`
	Servico   *Servico   `gorm:"foreignKey:ServicoID"`

	IncluirNoFinanceiro bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LancamentoPrestador) TableName() string { return "lancamentos_prestador" }

// ValorAssinadoCentavos is the entry's signed contribution to a balance.
func (l *LancamentoPrestador) ValorAssinadoCentavos() int64 {
	return l.Tipo.Sinal() * l.ValorCentavos
}

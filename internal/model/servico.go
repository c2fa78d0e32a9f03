package model

import (
	"time"

	"github.com/google/uuid"
)

// Servico is a single transport job from pickup to dropoff(s).
//
// Monetary fields are integer centavos — never floats. Numero is a
// zero-padded 5-digit human-readable code allocated from a Postgres
// sequence and never reused.
//
// Invariant: Status == cancelado ⇒ ValorCentavos == 0 ∧ ComissaoCentavos == 0,
// with the pre-cancellation amounts held in the *Original* snapshot fields.
// In every other status the snapshot fields are nil.
type Servico struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero string    `gorm:"type:varchar(20);uniqueIndex;not null"`

	// Cliente reference: registered id OR free-text name, mutually exclusive.
	ClienteID   *uuid.UUID `gorm:"type:uuid;index"`
	ClienteNome *string

	PrestadorID uuid.UUID `gorm:"type:uuid;index;not null"`

	ValorCentavos    int64           `gorm:"not null;default:0"`
	ComissaoCentavos int64           `gorm:"not null;default:0"`
	MetodoPagamento  MetodoPagamento `gorm:"type:varchar(30);not null"`
	StatusPagamento  StatusPagamento `gorm:"type:varchar(20);not null;default:'pendente'"`

	Agendado     bool `gorm:"not null;default:false"`
	AgendadoPara *time.Time
	Urgente      bool `gorm:"not null;default:false"`

	Status StatusServico `gorm:"type:varchar(30);not null;default:'aguardando_aceite';index"`

	// Cancellation snapshot — populated only while Status == cancelado.
	ValorOriginalCentavos    *int64
	ComissaoOriginalCentavos *int64
	MotivoCancelamento       *string
	CanceladoPor             *uuid.UUID `gorm:"type:uuid"`
	CanceladoEm              *time.Time

	// Audit
	CriadoPor     uuid.UUID  `gorm:"type:uuid;not null"`
	ModificadoPor *uuid.UUID `gorm:"type:uuid"`
	AceitoPor     *uuid.UUID `gorm:"type:uuid"`
	AceitoEm      *time.Time
	ConcluidoEm   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	Paradas []Parada `gorm:"foreignKey:ServicoID;constraint:OnDelete:CASCADE"`
}

// Parada is one stop in the order's route, in Ordem sequence.
type Parada struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ServicoID  uuid.UUID  `gorm:"type:uuid;index;not null"`
	Ordem      int        `gorm:"not null"`
	Tipo       TipoParada `gorm:"type:varchar(20);not null"`
	Endereco   string     `gorm:"not null"`
	Observacao *string
}

// EstaAtrasado reports derived lateness: a scheduled order whose scheduled
// time has passed while it is still in flight. Lateness is computed at read
// time, never persisted — multiple clients can evaluate it without racing to
// write a stored status.
func (s *Servico) EstaAtrasado(now time.Time) bool {
	if !s.Agendado || s.AgendadoPara == nil {
		return false
	}
	switch s.Status {
	case StatusConcluido, StatusCancelado, StatusRecusado:
		return false
	}
	return s.AgendadoPara.Before(now)
}

// ClienteValido enforces the id-XOR-free-text client reference.
func (s *Servico) ClienteValido() bool {
	temID := s.ClienteID != nil
	temNome := s.ClienteNome != nil && *s.ClienteNome != ""
	return temID != temNome
}

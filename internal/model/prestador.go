package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Prestador is the driver/courier fulfilling orders, paid by commission.
type Prestador struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome string    `gorm:"not null"`
	// PercentualComissao is the provider's cut of an order's value, e.g. 20.00.
	PercentualComissao decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Telefone           *string
	Email              *string
	ChavePix           *string
	Veiculo            *string
	Ativo              bool `gorm:"not null;default:true"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (Prestador) TableName() string { return "prestadores" }

package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is a registered customer. Orders may alternatively carry a
// free-text client name without a Cliente record.
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string    `gorm:"not null"`
	Documento *string   `gorm:"type:varchar(20)"`
	Telefone  *string
	Email     *string
	Endereco  *string
	Ativo     bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario stores system users with role-based access.
// Rol: "admin" | "operador" | "prestador"
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Nome         string    `gorm:"not null"`
	Email        *string
	PasswordHash string     `gorm:"not null"`
	Rol          RolUsuario `gorm:"type:varchar(20);not null"`
	// PrestadorID links a provider login to its Prestador record; nil for
	// office users.
	PrestadorID *uuid.UUID `gorm:"type:uuid"`
	Ativo       bool       `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

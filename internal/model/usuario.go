package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles de usuario.
const (
	RolSuperAdministrador = "super_administrador"
	RolAdministrador      = "administrador"
	RolVendedor           = "vendedor"
	RolCliente            = "cliente"
	RolSistemas           = "sistemas"
)

type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Nombre       string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	Rol          string    `gorm:"type:varchar(30);not null;default:'vendedor'"`
	Telefono     string
	Imagen       string
	Activo       bool `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Operator roles. Admins manage users and create records, operators run
// the day-to-day intake, viewers only read.
const (
	RoleAdmin    = "ADMIN"
	RoleOperator = "OPERATOR"
	RoleViewer   = "VIEWER"
)

// User is an authenticated operator of the registry.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Name         string    `gorm:"size:255" json:"name"`
	DevzappLink  *string   `gorm:"size:255" json:"devzappLink"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"size:20;not null;default:'VIEWER'" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"-"`
}

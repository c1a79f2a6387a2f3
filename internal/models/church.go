package models

import (
	"time"

	"github.com/google/uuid"
)

// Church is a congregation supporters belong to. Names are unique.
type Church struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"not null;size:255;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"-"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Municipality is unique per name within a state.
type Municipality struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"not null;size:255;uniqueIndex:idx_municipalities_name_state" json:"name"`
	StateCode string    `gorm:"size:2;not null;default:'SP';uniqueIndex:idx_municipalities_name_state" json:"stateCode"`
	CreatedAt time.Time `json:"-"`
}

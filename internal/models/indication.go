package models

import (
	"time"

	"github.com/google/uuid"
)

// Indication is a server-persisted supporter record, tied to the church
// and municipality it was registered under and to the operator who
// created it.
type Indication struct {
	ID             uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name           string       `gorm:"not null;size:255" json:"name"`
	Phone          *string      `gorm:"size:30;index" json:"phone"`
	Email          *string      `gorm:"size:255" json:"email"`
	IndicatedBy    string       `gorm:"not null;size:255;index" json:"indicatedBy"`
	ChurchID       uuid.UUID    `gorm:"type:uuid;not null;index" json:"churchId"`
	Church         Church       `gorm:"foreignKey:ChurchID" json:"church"`
	MunicipalityID uuid.UUID    `gorm:"type:uuid;not null;index" json:"municipalityId"`
	Municipality   Municipality `gorm:"foreignKey:MunicipalityID" json:"municipality"`
	CreatedByID    uuid.UUID    `gorm:"type:uuid;not null" json:"createdById"`
	CreatedBy      User         `gorm:"foreignKey:CreatedByID" json:"createdBy"`
	CreatedAt      time.Time    `gorm:"index" json:"createdAt"`
	UpdatedAt      time.Time    `json:"-"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Query scopes for indication listings.

// ByChurch filters indications registered under a church.
func ByChurch(churchID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("church_id = ?", churchID)
	}
}

// ByMunicipality filters indications registered under a municipality.
func ByMunicipality(municipalityID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("municipality_id = ?", municipalityID)
	}
}

// ByIndicator filters by referrer name, case-insensitive substring.
func ByIndicator(name string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("indicated_by ILIKE ?", "%"+name+"%")
	}
}

// CreatedBetween bounds createdAt; zero bounds are skipped.
func CreatedBetween(from, to time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !from.IsZero() {
			db = db.Where("created_at >= ?", from)
		}
		if !to.IsZero() {
			db = db.Where("created_at <= ?", to)
		}
		return db
	}
}

// Search matches a free-text term against name, phone, email and
// referrer name.
func Search(q string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term := "%" + q + "%"
		return db.Where(
			"name ILIKE ? OR phone ILIKE ? OR email ILIKE ? OR indicated_by ILIKE ?",
			term, term, term, term,
		)
	}
}

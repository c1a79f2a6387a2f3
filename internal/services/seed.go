package services

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kafune/rede-guti/internal/config"
	"github.com/kafune/rede-guti/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedUsers upserts the bootstrap accounts configured via environment.
// Without at least one admin the public signup flow rejects everything,
// so this runs on every boot.
func SeedUsers(db *gorm.DB, cfg *config.Config) error {
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := upsertUser(db, cfg.AdminEmail, cfg.AdminPassword, models.RoleAdmin); err != nil {
			return fmt.Errorf("failed to seed admin: %w", err)
		}
		slog.Info("admin account ensured", "email", strings.ToLower(cfg.AdminEmail))
	}

	if cfg.ViewerEmail != "" && cfg.ViewerPassword != "" {
		if err := upsertUser(db, cfg.ViewerEmail, cfg.ViewerPassword, models.RoleViewer); err != nil {
			return fmt.Errorf("failed to seed viewer: %w", err)
		}
	}

	return nil
}

func upsertUser(db *gorm.DB, email, password, role string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}

	var user models.User
	err = db.Where("email = ?", email).First(&user).Error
	if err == nil {
		return db.Model(&user).Updates(map[string]interface{}{
			"password_hash": string(hash),
			"role":          role,
		}).Error
	}

	user = models.User{
		Email:        email,
		Name:         strings.Split(email, "@")[0],
		PasswordHash: string(hash),
		Role:         role,
	}
	return db.Create(&user).Error
}

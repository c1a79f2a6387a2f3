package services

import (
	"errors"
	"strings"

	"github.com/kafune/rede-guti/internal/models"
	"gorm.io/gorm"
)

var ErrDuplicateName = errors.New("name already registered")

type ChurchService struct {
	db *gorm.DB
}

func NewChurchService(db *gorm.DB) *ChurchService {
	return &ChurchService{db: db}
}

func (s *ChurchService) List() ([]models.Church, error) {
	var churches []models.Church
	if err := s.db.Order("name ASC").Find(&churches).Error; err != nil {
		return nil, err
	}
	return churches, nil
}

func (s *ChurchService) Create(name string) (*models.Church, error) {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return nil, ErrInvalidPayload
	}

	church := models.Church{Name: name}
	if err := s.db.Create(&church).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return &church, nil
}

// FindOrCreateByName matches case-insensitively before inserting, so
// public signups don't fork near-duplicate churches.
func (s *ChurchService) FindOrCreateByName(name string) (*models.Church, error) {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return nil, ErrInvalidPayload
	}

	var church models.Church
	err := s.db.Where("name ILIKE ?", name).First(&church).Error
	if err == nil {
		return &church, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	church = models.Church{Name: name}
	if err := s.db.Create(&church).Error; err != nil {
		return nil, err
	}
	return &church, nil
}

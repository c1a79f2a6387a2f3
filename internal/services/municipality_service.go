package services

import (
	"errors"
	"strings"

	"github.com/kafune/rede-guti/internal/models"
	"gorm.io/gorm"
)

// DefaultStateCode is applied when a request omits the state.
const DefaultStateCode = "SP"

type MunicipalityService struct {
	db *gorm.DB
}

func NewMunicipalityService(db *gorm.DB) *MunicipalityService {
	return &MunicipalityService{db: db}
}

func (s *MunicipalityService) List() ([]models.Municipality, error) {
	var municipalities []models.Municipality
	if err := s.db.Order("name ASC").Find(&municipalities).Error; err != nil {
		return nil, err
	}
	return municipalities, nil
}

func (s *MunicipalityService) Create(name, stateCode string) (*models.Municipality, error) {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return nil, ErrInvalidPayload
	}
	stateCode = strings.ToUpper(strings.TrimSpace(stateCode))
	if stateCode == "" {
		stateCode = DefaultStateCode
	}
	if len(stateCode) != 2 {
		return nil, ErrInvalidPayload
	}

	municipality := models.Municipality{Name: name, StateCode: stateCode}
	if err := s.db.Create(&municipality).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return &municipality, nil
}

// FindOrCreateByName matches case-insensitively within the default
// state before inserting.
func (s *MunicipalityService) FindOrCreateByName(name string) (*models.Municipality, error) {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return nil, ErrInvalidPayload
	}

	var municipality models.Municipality
	err := s.db.Where("name ILIKE ? AND state_code = ?", name, DefaultStateCode).
		First(&municipality).Error
	if err == nil {
		return &municipality, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	municipality = models.Municipality{Name: name, StateCode: DefaultStateCode}
	if err := s.db.Create(&municipality).Error; err != nil {
		return nil, err
	}
	return &municipality, nil
}

package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kafune/rede-guti/internal/dto"
	"github.com/kafune/rede-guti/internal/models"
	"gorm.io/gorm"
)

var (
	ErrInvalidPayload = errors.New("invalid payload")
	ErrInvalidDate    = errors.New("invalid date range")
	ErrNotFound       = errors.New("record not found")
)

type IndicationService struct {
	db *gorm.DB
}

func NewIndicationService(db *gorm.DB) *IndicationService {
	return &IndicationService{db: db}
}

func (s *IndicationService) List(filter *dto.IndicationFilter) ([]models.Indication, error) {
	from, err := parseFilterDate(filter.DateFrom)
	if err != nil {
		return nil, ErrInvalidDate
	}
	to, err := parseFilterDate(filter.DateTo)
	if err != nil {
		return nil, ErrInvalidDate
	}

	query := s.db.Model(&models.Indication{}).
		Preload("Church").
		Preload("Municipality").
		Preload("CreatedBy").
		Scopes(models.CreatedBetween(from, to))

	if filter.ChurchID != "" {
		query = query.Scopes(models.ByChurch(filter.ChurchID))
	}
	if filter.MunicipalityID != "" {
		query = query.Scopes(models.ByMunicipality(filter.MunicipalityID))
	}
	if filter.IndicatedBy != "" {
		query = query.Scopes(models.ByIndicator(filter.IndicatedBy))
	}
	if filter.Query != "" {
		query = query.Scopes(models.Search(filter.Query))
	}

	var indications []models.Indication
	if err := query.Order("created_at DESC").Find(&indications).Error; err != nil {
		return nil, err
	}
	return indications, nil
}

func (s *IndicationService) Create(createdByID uuid.UUID, req *dto.CreateIndicationRequest) (*models.Indication, error) {
	name := strings.TrimSpace(req.Name)
	indicatedBy := strings.TrimSpace(req.IndicatedBy)
	phone := strings.TrimSpace(req.Phone)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if len(name) < 2 || len(indicatedBy) < 2 {
		return nil, ErrInvalidPayload
	}
	if phone != "" && len(phone) < 6 {
		return nil, ErrInvalidPayload
	}
	if email != "" && !strings.Contains(email, "@") {
		return nil, ErrInvalidPayload
	}

	churchID, err := uuid.Parse(req.ChurchID)
	if err != nil {
		return nil, ErrInvalidPayload
	}
	municipalityID, err := uuid.Parse(req.MunicipalityID)
	if err != nil {
		return nil, ErrInvalidPayload
	}

	indication := models.Indication{
		Name:           name,
		IndicatedBy:    indicatedBy,
		ChurchID:       churchID,
		MunicipalityID: municipalityID,
		CreatedByID:    createdByID,
	}
	if phone != "" {
		indication.Phone = &phone
	}
	if email != "" {
		indication.Email = &email
	}

	if err := s.db.Create(&indication).Error; err != nil {
		return nil, err
	}

	if err := s.db.Preload("Church").Preload("Municipality").Preload("CreatedBy").
		First(&indication, "id = ?", indication.ID).Error; err != nil {
		return nil, err
	}
	return &indication, nil
}

func (s *IndicationService) Delete(id uuid.UUID) error {
	result := s.db.Delete(&models.Indication{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func parseFilterDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

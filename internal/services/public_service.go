package services

import (
	"errors"
	"strings"

	"github.com/kafune/rede-guti/internal/dto"
	"github.com/kafune/rede-guti/internal/models"
	"gorm.io/gorm"
)

var ErrNoAdmin = errors.New("no admin account configured")

const directSignup = "Cadastro direto"

// PublicService backs the unauthenticated self-signup flow behind the
// shareable referral link.
type PublicService struct {
	db             *gorm.DB
	churches       *ChurchService
	municipalities *MunicipalityService
}

func NewPublicService(db *gorm.DB, churches *ChurchService, municipalities *MunicipalityService) *PublicService {
	return &PublicService{db: db, churches: churches, municipalities: municipalities}
}

// Options lists church and municipality names for the signup form.
func (s *PublicService) Options() (*dto.PublicOptionsResponse, error) {
	var churchNames []string
	if err := s.db.Model(&models.Church{}).Order("name ASC").
		Pluck("name", &churchNames).Error; err != nil {
		return nil, err
	}

	var municipalityNames []string
	if err := s.db.Model(&models.Municipality{}).Order("name ASC").
		Pluck("name", &municipalityNames).Error; err != nil {
		return nil, err
	}

	return &dto.PublicOptionsResponse{
		Churches:       churchNames,
		Municipalities: municipalityNames,
	}, nil
}

// SignUp registers a supporter without authentication. The record is
// attributed to the oldest admin account; churches and municipalities
// are resolved by name, creating them when missing.
func (s *PublicService) SignUp(req *dto.PublicSignupRequest) (*models.Indication, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	churchName := strings.TrimSpace(req.ChurchName)
	municipalityName := strings.TrimSpace(req.MunicipalityName)
	indicatedBy := strings.TrimSpace(req.IndicatedBy)

	if len(name) < 2 || len(phone) < 6 || len(churchName) < 2 || len(municipalityName) < 2 {
		return nil, ErrInvalidPayload
	}
	// A link without a referrer still registers; the record is tagged as
	// a direct signup.
	if indicatedBy == "" {
		indicatedBy = directSignup
	}
	if email != "" && !strings.Contains(email, "@") {
		return nil, ErrInvalidPayload
	}

	var admin models.User
	err := s.db.Where("role = ?", models.RoleAdmin).
		Order("created_at ASC").First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoAdmin
		}
		return nil, err
	}

	church, err := s.churches.FindOrCreateByName(churchName)
	if err != nil {
		return nil, err
	}
	municipality, err := s.municipalities.FindOrCreateByName(municipalityName)
	if err != nil {
		return nil, err
	}

	indication := models.Indication{
		Name:           name,
		Phone:          &phone,
		IndicatedBy:    indicatedBy,
		ChurchID:       church.ID,
		MunicipalityID: municipality.ID,
		CreatedByID:    admin.ID,
	}
	if email != "" {
		indication.Email = &email
	}

	if err := s.db.Create(&indication).Error; err != nil {
		return nil, err
	}

	if err := s.db.Preload("Church").Preload("Municipality").
		First(&indication, "id = ?", indication.ID).Error; err != nil {
		return nil, err
	}
	return &indication, nil
}

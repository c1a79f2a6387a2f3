package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/kafune/rede-guti/internal/dto"
	"github.com/kafune/rede-guti/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrLastAdmin      = errors.New("cannot remove the last admin")
	ErrSelfDelete     = errors.New("cannot delete own account")
	ErrHasIndications = errors.New("user still owns indications")
)

const bcryptCost = 10

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) List() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) Create(req *dto.CreateUserRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)

	if !strings.Contains(email, "@") || len(name) < 2 || len(req.Password) < 6 {
		return nil, ErrInvalidPayload
	}
	if !validRole(req.Role) {
		return nil, ErrInvalidPayload
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if req.DevzappLink != nil {
		if link := strings.TrimSpace(*req.DevzappLink); link != "" {
			user.DevzappLink = &link
		}
	}

	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Update(id uuid.UUID, req *dto.UpdateUserRequest) (*models.User, error) {
	var existing models.User
	if err := s.db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !strings.Contains(email, "@") {
			return nil, ErrInvalidPayload
		}
		updates["email"] = email
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if len(name) < 2 {
			return nil, ErrInvalidPayload
		}
		updates["name"] = name
	}
	if req.Password != nil {
		if len(*req.Password) < 6 {
			return nil, ErrInvalidPayload
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcryptCost)
		if err != nil {
			return nil, err
		}
		updates["password_hash"] = string(hash)
	}
	if req.Role != nil {
		if !validRole(*req.Role) {
			return nil, ErrInvalidPayload
		}
		if existing.Role == models.RoleAdmin && *req.Role != models.RoleAdmin {
			if last, err := s.isLastAdmin(); err != nil {
				return nil, err
			} else if last {
				return nil, ErrLastAdmin
			}
		}
		updates["role"] = *req.Role
	}
	if req.DevzappLink != nil {
		link := strings.TrimSpace(*req.DevzappLink)
		if link == "" {
			updates["devzapp_link"] = nil
		} else {
			updates["devzapp_link"] = link
		}
	}

	if len(updates) == 0 {
		return nil, ErrInvalidPayload
	}

	if err := s.db.Model(&existing).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}

	if err := s.db.First(&existing, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (s *UserService) Delete(id, requesterID uuid.UUID) error {
	var existing models.User
	if err := s.db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if existing.ID == requesterID {
		return ErrSelfDelete
	}

	if existing.Role == models.RoleAdmin {
		if last, err := s.isLastAdmin(); err != nil {
			return err
		} else if last {
			return ErrLastAdmin
		}
	}

	if err := s.db.Delete(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrHasIndications
		}
		return err
	}
	return nil
}

func (s *UserService) isLastAdmin() (bool, error) {
	var count int64
	if err := s.db.Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return false, err
	}
	return count <= 1, nil
}

func validRole(role string) bool {
	switch role {
	case models.RoleAdmin, models.RoleOperator, models.RoleViewer:
		return true
	}
	return false
}

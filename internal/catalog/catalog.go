// Package catalog holds the plain reference data: universities and the
// user/role identity records. No derived fields live here.
package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/PDPSchoolTeam/Metsenat-API/internal/apperr"
	"github.com/PDPSchoolTeam/Metsenat-API/internal/models"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateUniversity(ctx context.Context, name string) (*models.University, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("name", "university name is required")
	}
	university := models.University{Name: name}
	if err := s.db.WithContext(ctx).Create(&university).Error; err != nil {
		return nil, err
	}
	return &university, nil
}

func (s *Store) Universities(ctx context.Context) ([]models.University, error) {
	var universities []models.University
	if err := s.db.WithContext(ctx).Order("id").Find(&universities).Error; err != nil {
		return nil, err
	}
	return universities, nil
}

func (s *Store) University(ctx context.Context, id uint) (*models.University, error) {
	var university models.University
	if err := s.db.WithContext(ctx).First(&university, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("university")
		}
		return nil, err
	}
	return &university, nil
}

// CreateUser stores a new identity record. The password must already be
// hashed by the caller; this store never sees plaintext.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if user.Role != "" && !user.Role.Valid() {
		return apperr.Validation("role", "role must be student, admin or sponsor")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("email")
	}
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("username")
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		// Races between the pre-checks and the insert land here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("email")
		}
		return err
	}
	return nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user")
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user")
		}
		return nil, err
	}
	return &user, nil
}

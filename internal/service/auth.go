package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/careerlens/backend/internal/models"
)

// AuthService owns user credentials: registration, login checks, password
// resets and the admin-facing user operations.
type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// Register creates a user with role "user". The email must be unused.
func (s *AuthService) Register(name, email, phone, password string) (*models.User, error) {
	return s.createUser(name, email, phone, password, models.RoleUser)
}

// CreateAdmin creates a user with the admin role.
func (s *AuthService) CreateAdmin(name, email, password string) (*models.User, error) {
	return s.createUser(name, email, "", password, models.RoleAdmin)
}

func (s *AuthService) createUser(name, email, phone, password, role string) (*models.User, error) {
	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies an email/password pair. Unknown emails and hash
// mismatches are indistinguishable to the caller.
func (s *AuthService) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// ResetPassword overwrites the stored hash when the exact (email, phone)
// pair matches a user.
func (s *AuthService) ResetPassword(email, phone, newPassword string) error {
	var user models.User
	if err := s.db.Where("email = ? AND phone = ?", email, phone).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.db.Model(&user).Update("password_hash", hash).Error
}

// ListUsers returns all users ordered by id.
func (s *AuthService) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("id asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// PromoteUser sets the user's role to admin.
func (s *AuthService) PromoteUser(id uint) error {
	res := s.db.Model(&models.User{}).Where("id = ?", id).Update("role", models.RoleAdmin)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// DeleteUser removes a user; the profile and history rows follow via the
// cascade foreign keys.
func (s *AuthService) DeleteUser(id uint) error {
	// GORM won't fire sqlite cascades unless the pragma is on, which the
	// database package enforces at open time. Profile and history rows are
	// deleted explicitly as well so postgres and sqlite behave identically
	// regardless of when the FK constraints were created.
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.HistoryRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Profile{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
}

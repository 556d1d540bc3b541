// File: /repositories/user_repository.go
package repositories

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"sportsync-api/models"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID retrieves a user profile
func (r *UserRepository) GetByID(userID string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user profile by email address
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateIfAbsent inserts a profile unless one already exists for the id.
// A single conditional write, so concurrent first-interaction paths cannot
// race each other into duplicate-key errors.
func (r *UserRepository) CreateIfAbsent(user *models.User) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(user).Error
}

// UpdateProfile applies a partial update to a user profile
func (r *UserRepository) UpdateProfile(userID string, updates map[string]interface{}) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

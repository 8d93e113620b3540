package auth

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=auth

import (
	"context"
	"errors"

	"github.com/akeren/macro-app-api/internal/models"
	apperrors "github.com/akeren/macro-app-api/pkg/errors"
	"gorm.io/gorm"
)

// UserRepository looks users up by phone number, the subject of every session token.
type UserRepository interface {
	// FindByPhone returns ErrUserNotFound when no user has the number.
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
	Create(ctx context.Context, phone, name string) (*models.User, error)
	// UpdateName returns ErrUserNotFound when no row matched.
	UpdateName(ctx context.Context, phone, name string) (*models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("phone_number = ?", phone).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, apperrors.NewDatabaseError("failed to fetch user", err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, phone, name string) (*models.User, error) {
	user := &models.User{PhoneNumber: phone, Name: name}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if apperrors.IsDuplicateKeyError(err) {
			return nil, apperrors.NewConflictError("user already exists", err)
		}
		return nil, apperrors.NewDatabaseError("unable to create user", err)
	}
	return user, nil
}

func (r *userRepository) UpdateName(ctx context.Context, phone, name string) (*models.User, error) {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("phone_number = ?", phone).
		Update("name", name)
	if result.Error != nil {
		return nil, apperrors.NewDatabaseError("unable to update username", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}

	return r.FindByPhone(ctx, phone)
}

package repository

import (
	"errors"
	"fmt"

	"github.com/pollify/backend/internal/dto"
	"github.com/pollify/backend/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user model.User) (model.User, error)
	GetByID(id uint) (model.User, error)
	GetByUsername(username string) (model.User, error)
	GetByEmail(email string) (model.User, error)
	ListNonAdmin() ([]model.User, error)
	Delete(id uint) error
}

type user struct {
	db *gorm.DB
}

func newUserRepository(db *gorm.DB) UserRepository {
	return &user{
		db: db,
	}
}

func (u *user) Create(user model.User) (model.User, error) {
	result := u.db.Create(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return model.User{}, fmt.Errorf("%w: username or email already taken", dto.ErrValidation)
		}
		return model.User{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return user, nil
}

func (u *user) GetByID(id uint) (model.User, error) {
	var user model.User
	result := u.db.First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return model.User{}, fmt.Errorf("%w: user %d", dto.ErrNotFound, id)
		}
		return model.User{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return user, nil
}

func (u *user) GetByUsername(username string) (model.User, error) {
	var user model.User
	result := u.db.Where("username = ?", username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return model.User{}, fmt.Errorf("%w: user %q", dto.ErrNotFound, username)
		}
		return model.User{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return user, nil
}

func (u *user) GetByEmail(email string) (model.User, error) {
	var user model.User
	result := u.db.Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return model.User{}, fmt.Errorf("%w: email %q", dto.ErrNotFound, email)
		}
		return model.User{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return user, nil
}

func (u *user) ListNonAdmin() ([]model.User, error) {
	var users []model.User
	result := u.db.Where("is_admin = ?", false).Order("created_at").Find(&users)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return users, nil
}

func (u *user) Delete(id uint) error {
	result := u.db.Delete(&model.User{}, id)
	if result.Error != nil {
		return fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return nil
}

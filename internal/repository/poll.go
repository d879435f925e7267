package repository

import (
	"errors"
	"fmt"

	"github.com/pollify/backend/internal/dto"
	"github.com/pollify/backend/internal/model"
	"gorm.io/gorm"
)

type PollRepository interface {
	Create(poll model.Poll) (model.Poll, error)
	GetByID(id uint) (model.Poll, error)
	GetByShareCode(shareCode string) (model.Poll, error)
	ListByUser(userID uint) ([]model.Poll, error)
	ListAll() ([]model.Poll, error)
	Delete(id uint) error
}

type poll struct {
	db *gorm.DB
}

func newPollRepository(db *gorm.DB) PollRepository {
	return &poll{
		db: db,
	}
}

// Create persists the poll together with its options in one transaction, so a
// poll never exists without its option rows.
func (p *poll) Create(poll model.Poll) (model.Poll, error) {
	result := p.db.Create(&poll)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return model.Poll{}, fmt.Errorf("%w: share code collision", dto.ErrValidation)
		}
		return model.Poll{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return poll, nil
}

func (p *poll) GetByID(id uint) (model.Poll, error) {
	var poll model.Poll
	result := p.db.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("poll_options.id")
	}).First(&poll, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return model.Poll{}, fmt.Errorf("%w: poll %d", dto.ErrNotFound, id)
		}
		return model.Poll{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return poll, nil
}

func (p *poll) GetByShareCode(shareCode string) (model.Poll, error) {
	var poll model.Poll
	result := p.db.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("poll_options.id")
	}).Where("share_code = ?", shareCode).First(&poll)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return model.Poll{}, fmt.Errorf("%w: poll %q", dto.ErrNotFound, shareCode)
		}
		return model.Poll{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return poll, nil
}

func (p *poll) ListByUser(userID uint) ([]model.Poll, error) {
	var polls []model.Poll
	result := p.db.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("poll_options.id")
	}).Where("user_id = ?", userID).Order("created_at desc").Find(&polls)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return polls, nil
}

func (p *poll) ListAll() ([]model.Poll, error) {
	var polls []model.Poll
	result := p.db.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("poll_options.id")
	}).Order("created_at desc").Find(&polls)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return polls, nil
}

func (p *poll) Delete(id uint) error {
	result := p.db.Delete(&model.Poll{}, id)
	if result.Error != nil {
		return fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return nil
}

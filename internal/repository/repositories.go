package repository

import (
	"github.com/pollify/backend/internal/model"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Repositories interface {
	User() UserRepository
	Poll() PollRepository
	Vote() VoteRepository
}

type repositories struct {
	userRepository UserRepository
	pollRepository PollRepository
	voteRepository VoteRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	err := db.AutoMigrate(&model.User{}, &model.Poll{}, &model.PollOption{}, &model.Vote{})
	if err != nil {
		logrus.Panic(err)
	}
	userRepository := newUserRepository(db)
	pollRepository := newPollRepository(db)
	voteRepository := newVoteRepository(db)
	return &repositories{
		userRepository: userRepository,
		pollRepository: pollRepository,
		voteRepository: voteRepository,
	}
}

func (r repositories) User() UserRepository {
	return r.userRepository
}

func (r repositories) Poll() PollRepository {
	return r.pollRepository
}

func (r repositories) Vote() VoteRepository {
	return r.voteRepository
}

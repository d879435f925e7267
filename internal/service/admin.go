package service

import (
	"fmt"

	"github.com/pollify/backend/internal/dto"
	"github.com/pollify/backend/internal/model"
	"github.com/pollify/backend/internal/repository"
	"github.com/sirupsen/logrus"
)

type AdminService interface {
	UserStats() ([]dto.UserStats, error)
	ListPolls() ([]model.Poll, error)
	TotalVotes(pollID uint) (int64, error)
	DeleteUser(id uint) error
	DeletePoll(id uint) error
}

type adminService struct {
	userRepository repository.UserRepository
	pollRepository repository.PollRepository
	voteRepository repository.VoteRepository
}

func newAdminService(userRepository repository.UserRepository, pollRepository repository.PollRepository, voteRepository repository.VoteRepository) AdminService {
	return &adminService{
		userRepository: userRepository,
		pollRepository: pollRepository,
		voteRepository: voteRepository,
	}
}

// UserStats aggregates poll counts and cumulative received votes for every
// non-admin user.
func (a *adminService) UserStats() ([]dto.UserStats, error) {
	users, err := a.userRepository.ListNonAdmin()
	if err != nil {
		return nil, err
	}

	stats := make([]dto.UserStats, 0, len(users))
	for _, user := range users {
		polls, err := a.pollRepository.ListByUser(user.ID)
		if err != nil {
			return nil, err
		}

		var totalVotes int64
		for _, poll := range polls {
			count, err := a.voteRepository.CountByPoll(poll.ID)
			if err != nil {
				return nil, err
			}
			totalVotes += count
		}

		stats = append(stats, dto.UserStats{
			User: dto.UserSummary{
				ID:       user.ID,
				Username: user.Username,
				Email:    user.Email,
				IsAdmin:  user.IsAdmin,
			},
			PollCount:  len(polls),
			TotalVotes: totalVotes,
		})
	}

	return stats, nil
}

func (a *adminService) ListPolls() ([]model.Poll, error) {
	return a.pollRepository.ListAll()
}

func (a *adminService) TotalVotes(pollID uint) (int64, error) {
	return a.voteRepository.CountByPoll(pollID)
}

// DeleteUser removes a user and, through the cascade rules, all of their
// polls, options and votes. Admin accounts cannot be deleted.
func (a *adminService) DeleteUser(id uint) error {
	user, err := a.userRepository.GetByID(id)
	if err != nil {
		return err
	}
	if user.IsAdmin {
		return fmt.Errorf("%w: cannot delete admin user", dto.ErrValidation)
	}

	if err := a.userRepository.Delete(id); err != nil {
		return err
	}

	logrus.Infof("Deleted user %s", user.Username)
	return nil
}

func (a *adminService) DeletePoll(id uint) error {
	poll, err := a.pollRepository.GetByID(id)
	if err != nil {
		return err
	}

	if err := a.pollRepository.Delete(id); err != nil {
		return err
	}

	logrus.Infof("Deleted poll %d (%s)", poll.ID, poll.Question)
	return nil
}

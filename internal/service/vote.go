package service

import (
	"fmt"

	"github.com/pollify/backend/internal/dto"
	"github.com/pollify/backend/internal/model"
	"github.com/pollify/backend/internal/repository"
	"github.com/sirupsen/logrus"
)

type VoteService interface {
	CastVote(request dto.VoteRequest, voterIP string) (dto.PollResults, error)
}

type voteService struct {
	pollRepository repository.PollRepository
	voteRepository repository.VoteRepository
	pollService    PollService
	pollBroker     PollBroker
}

func newVoteService(pollRepository repository.PollRepository, voteRepository repository.VoteRepository, pollService PollService, pollBroker PollBroker) VoteService {
	return &voteService{
		pollRepository: pollRepository,
		voteRepository: voteRepository,
		pollService:    pollService,
		pollBroker:     pollBroker,
	}
}

// CastVote admits a vote if no prior vote exists for (poll, address), then
// recomputes the aggregate, pushes it to the poll's subscriber group and
// returns it to the caller. The option must belong to the named poll.
func (v *voteService) CastVote(request dto.VoteRequest, voterIP string) (dto.PollResults, error) {
	poll, err := v.pollRepository.GetByID(request.PollID)
	if err != nil {
		return dto.PollResults{}, err
	}

	if !pollHasOption(poll, request.OptionID) {
		return dto.PollResults{}, fmt.Errorf("%w: option %d does not belong to poll %d", dto.ErrValidation, request.OptionID, poll.ID)
	}

	_, err = v.voteRepository.Create(model.Vote{
		PollID:   poll.ID,
		OptionID: request.OptionID,
		VoterIP:  voterIP,
	})
	if err != nil {
		return dto.PollResults{}, err
	}

	results, err := v.pollService.Results(poll.ID)
	if err != nil {
		return dto.PollResults{}, err
	}

	logrus.Infof("Vote admitted on poll %d option %d", poll.ID, request.OptionID)
	v.pollBroker.Publish(results)

	return results, nil
}

func pollHasOption(poll model.Poll, optionID uint) bool {
	for _, option := range poll.Options {
		if option.ID == optionID {
			return true
		}
	}
	return false
}

package service

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/pollify/backend/internal/dto"
	"github.com/pollify/backend/internal/model"
	"github.com/pollify/backend/internal/repository"
	"github.com/skip2/go-qrcode"
)

const shareCodeBytes = 10

type PollService interface {
	CreatePoll(userID uint, request dto.CreatePollRequest) (model.Poll, error)
	GetByID(id uint) (model.Poll, error)
	GetByShareCode(shareCode string) (model.Poll, error)
	ListByUser(userID uint) ([]model.Poll, error)
	Results(pollID uint) (dto.PollResults, error)
	TotalVotes(pollID uint) (int64, error)
	ShareURL(shareCode string) string
	QRCodePNG(shareCode string) (string, error)
}

type pollService struct {
	pollRepository repository.PollRepository
	voteRepository repository.VoteRepository
	config         dto.Config
}

func newPollService(pollRepository repository.PollRepository, voteRepository repository.VoteRepository, config dto.Config) PollService {
	return &pollService{
		pollRepository: pollRepository,
		voteRepository: voteRepository,
		config:         config,
	}
}

// CreatePoll validates the question and options, generates an unguessable
// share code and persists the poll with its options in submission order.
func (p *pollService) CreatePoll(userID uint, request dto.CreatePollRequest) (model.Poll, error) {
	question := strings.TrimSpace(request.Question)
	if question == "" {
		return model.Poll{}, fmt.Errorf("%w: question is required", dto.ErrValidation)
	}

	options := make([]model.PollOption, 0, len(request.Options))
	for _, text := range request.Options {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		options = append(options, model.PollOption{Text: text})
	}
	if len(options) < 2 {
		return model.Poll{}, fmt.Errorf("%w: please provide at least 2 options", dto.ErrValidation)
	}

	// A share code collision is astronomically unlikely at this entropy, but
	// the unique constraint makes it detectable, so retry a few times.
	for attempt := 0; attempt < 3; attempt++ {
		shareCode, err := generateShareCode()
		if err != nil {
			return model.Poll{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, err)
		}

		poll := model.Poll{
			Question:  question,
			UserID:    userID,
			ShareCode: shareCode,
			Options:   options,
		}

		created, err := p.pollRepository.Create(poll)
		if err != nil {
			if errors.Is(err, dto.ErrValidation) {
				continue
			}
			return model.Poll{}, err
		}
		return created, nil
	}

	return model.Poll{}, fmt.Errorf("%w: could not allocate a unique share code", dto.ErrInternalFailure)
}

func (p *pollService) GetByID(id uint) (model.Poll, error) {
	return p.pollRepository.GetByID(id)
}

func (p *pollService) GetByShareCode(shareCode string) (model.Poll, error) {
	return p.pollRepository.GetByShareCode(shareCode)
}

func (p *pollService) ListByUser(userID uint) ([]model.Poll, error) {
	return p.pollRepository.ListByUser(userID)
}

// Results recomputes the aggregate snapshot from the vote rows. Options with
// no votes appear with a zero count.
func (p *pollService) Results(pollID uint) (dto.PollResults, error) {
	poll, err := p.pollRepository.GetByID(pollID)
	if err != nil {
		return dto.PollResults{}, err
	}

	tally, err := p.voteRepository.TallyByOption(pollID)
	if err != nil {
		return dto.PollResults{}, err
	}

	total, err := p.voteRepository.CountByPoll(pollID)
	if err != nil {
		return dto.PollResults{}, err
	}

	results := make(map[uint]dto.OptionResult, len(poll.Options))
	for _, option := range poll.Options {
		results[option.ID] = dto.OptionResult{
			Text:  option.Text,
			Votes: tally[option.ID],
		}
	}

	return dto.PollResults{
		PollID:     poll.ID,
		Results:    results,
		TotalVotes: total,
	}, nil
}

func (p *pollService) TotalVotes(pollID uint) (int64, error) {
	return p.voteRepository.CountByPoll(pollID)
}

func (p *pollService) ShareURL(shareCode string) string {
	return strings.TrimRight(p.config.BaseURL, "/") + "/poll/" + shareCode
}

// QRCodePNG renders the poll's share URL as a base64-encoded PNG.
func (p *pollService) QRCodePNG(shareCode string) (string, error) {
	png, err := qrcode.Encode(p.ShareURL(shareCode), qrcode.Medium, 256)
	if err != nil {
		return "", fmt.Errorf("%w: %v", dto.ErrInternalFailure, err)
	}
	return base64.StdEncoding.EncodeToString(png), nil
}

func generateShareCode() (string, error) {
	buf := make([]byte, shareCodeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

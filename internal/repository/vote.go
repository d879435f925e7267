package repository

import (
	"errors"
	"fmt"

	"github.com/pollify/backend/internal/dto"
	"github.com/pollify/backend/internal/model"
	"gorm.io/gorm"
)

type VoteRepository interface {
	Create(vote model.Vote) (model.Vote, error)
	CountByPoll(pollID uint) (int64, error)
	TallyByOption(pollID uint) (map[uint]int64, error)
}

type vote struct {
	db *gorm.DB
}

func newVoteRepository(db *gorm.DB) VoteRepository {
	return &vote{
		db: db,
	}
}

// Create appends a vote row. The unique index on (poll_id, voter_ip) rejects a
// second vote from the same address; that violation surfaces as
// dto.ErrDuplicateVote.
func (v *vote) Create(vote model.Vote) (model.Vote, error) {
	result := v.db.Create(&vote)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return model.Vote{}, fmt.Errorf("%w: poll %d already has a vote from this address", dto.ErrDuplicateVote, vote.PollID)
		}
		return model.Vote{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return vote, nil
}

func (v *vote) CountByPoll(pollID uint) (int64, error) {
	var count int64
	result := v.db.Model(&model.Vote{}).Where("poll_id = ?", pollID).Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return count, nil
}

// TallyByOption counts vote rows grouped by option. Options with no votes are
// absent from the map; callers fill in zeroes from the poll's option list.
func (v *vote) TallyByOption(pollID uint) (map[uint]int64, error) {
	var rows []struct {
		OptionID uint
		Count    int64
	}
	result := v.db.Model(&model.Vote{}).
		Select("option_id, count(*) as count").
		Where("poll_id = ?", pollID).
		Group("option_id").
		Scan(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	tally := make(map[uint]int64, len(rows))
	for _, row := range rows {
		tally[row.OptionID] = row.Count
	}
	return tally, nil
}

package service

import (
	"fmt"
	"sort"

	"github.com/pollify/backend/internal/dto"
	"github.com/pollify/backend/internal/model"
)

// In-memory repository fakes mirroring the constraint behavior of the real
// postgres-backed implementations, including unique-violation signalling and
// the delete cascades the schema's foreign keys enforce.

// newFakeRepositories wires the three fakes together so deletes cascade the
// way the database does: user -> polls -> options/votes.
func newFakeRepositories() (*fakeUserRepository, *fakePollRepository, *fakeVoteRepository) {
	voteRepo := newFakeVoteRepository()
	pollRepo := newFakePollRepository()
	pollRepo.votes = voteRepo
	userRepo := newFakeUserRepository()
	userRepo.polls = pollRepo
	return userRepo, pollRepo, voteRepo
}

type fakeUserRepository struct {
	nextID uint
	users  map[uint]model.User
	polls  *fakePollRepository
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[uint]model.User)}
}

func (f *fakeUserRepository) Create(user model.User) (model.User, error) {
	for _, existing := range f.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return model.User{}, fmt.Errorf("%w: username or email already taken", dto.ErrValidation)
		}
	}
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepository) GetByID(id uint) (model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return model.User{}, fmt.Errorf("%w: user %d", dto.ErrNotFound, id)
	}
	return user, nil
}

func (f *fakeUserRepository) GetByUsername(username string) (model.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return model.User{}, fmt.Errorf("%w: user %q", dto.ErrNotFound, username)
}

func (f *fakeUserRepository) GetByEmail(email string) (model.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return model.User{}, fmt.Errorf("%w: email %q", dto.ErrNotFound, email)
}

func (f *fakeUserRepository) ListNonAdmin() ([]model.User, error) {
	var users []model.User
	for _, user := range f.users {
		if !user.IsAdmin {
			users = append(users, user)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (f *fakeUserRepository) Delete(id uint) error {
	delete(f.users, id)
	if f.polls != nil {
		for pollID, poll := range f.polls.polls {
			if poll.UserID == id {
				f.polls.Delete(pollID)
			}
		}
	}
	return nil
}

type fakePollRepository struct {
	nextPollID   uint
	nextOptionID uint
	polls        map[uint]model.Poll
	votes        *fakeVoteRepository
}

func newFakePollRepository() *fakePollRepository {
	return &fakePollRepository{polls: make(map[uint]model.Poll)}
}

func (f *fakePollRepository) Create(poll model.Poll) (model.Poll, error) {
	for _, existing := range f.polls {
		if existing.ShareCode == poll.ShareCode {
			return model.Poll{}, fmt.Errorf("%w: share code collision", dto.ErrValidation)
		}
	}
	f.nextPollID++
	poll.ID = f.nextPollID
	for i := range poll.Options {
		f.nextOptionID++
		poll.Options[i].ID = f.nextOptionID
		poll.Options[i].PollID = poll.ID
	}
	f.polls[poll.ID] = poll
	return poll, nil
}

func (f *fakePollRepository) GetByID(id uint) (model.Poll, error) {
	poll, ok := f.polls[id]
	if !ok {
		return model.Poll{}, fmt.Errorf("%w: poll %d", dto.ErrNotFound, id)
	}
	return poll, nil
}

func (f *fakePollRepository) GetByShareCode(shareCode string) (model.Poll, error) {
	for _, poll := range f.polls {
		if poll.ShareCode == shareCode {
			return poll, nil
		}
	}
	return model.Poll{}, fmt.Errorf("%w: poll %q", dto.ErrNotFound, shareCode)
}

func (f *fakePollRepository) ListByUser(userID uint) ([]model.Poll, error) {
	var polls []model.Poll
	for _, poll := range f.polls {
		if poll.UserID == userID {
			polls = append(polls, poll)
		}
	}
	sort.Slice(polls, func(i, j int) bool { return polls[i].ID < polls[j].ID })
	return polls, nil
}

func (f *fakePollRepository) ListAll() ([]model.Poll, error) {
	var polls []model.Poll
	for _, poll := range f.polls {
		polls = append(polls, poll)
	}
	sort.Slice(polls, func(i, j int) bool { return polls[i].ID < polls[j].ID })
	return polls, nil
}

func (f *fakePollRepository) Delete(id uint) error {
	delete(f.polls, id)
	if f.votes != nil {
		kept := f.votes.votes[:0]
		for _, vote := range f.votes.votes {
			if vote.PollID != id {
				kept = append(kept, vote)
			}
		}
		f.votes.votes = kept
	}
	return nil
}

type fakeVoteRepository struct {
	nextID uint
	votes  []model.Vote
}

func newFakeVoteRepository() *fakeVoteRepository {
	return &fakeVoteRepository{}
}

func (f *fakeVoteRepository) Create(vote model.Vote) (model.Vote, error) {
	for _, existing := range f.votes {
		if existing.PollID == vote.PollID && existing.VoterIP == vote.VoterIP {
			return model.Vote{}, fmt.Errorf("%w: poll %d already has a vote from this address", dto.ErrDuplicateVote, vote.PollID)
		}
	}
	f.nextID++
	vote.ID = f.nextID
	f.votes = append(f.votes, vote)
	return vote, nil
}

func (f *fakeVoteRepository) CountByPoll(pollID uint) (int64, error) {
	var count int64
	for _, vote := range f.votes {
		if vote.PollID == pollID {
			count++
		}
	}
	return count, nil
}

func (f *fakeVoteRepository) TallyByOption(pollID uint) (map[uint]int64, error) {
	tally := make(map[uint]int64)
	for _, vote := range f.votes {
		if vote.PollID == pollID {
			tally[vote.OptionID]++
		}
	}
	return tally, nil
}

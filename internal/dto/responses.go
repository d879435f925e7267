package dto

import "time"

type ErrorResponse struct {
	Message string `json:"message"`
}

// OptionResult is one entry of an aggregate snapshot.
type OptionResult struct {
	Text  string `json:"text"`
	Votes int64  `json:"votes"`
}

// PollResults is the aggregate snapshot for a poll: every option's cumulative
// vote count plus the poll's total. Counts are always recomputed from the vote
// rows, never cached.
type PollResults struct {
	PollID     uint                  `json:"poll_id"`
	Results    map[uint]OptionResult `json:"results"`
	TotalVotes int64                 `json:"total_votes"`
}

type VoteResponse struct {
	Success    bool                  `json:"success"`
	Message    string                `json:"message,omitempty"`
	Results    map[uint]OptionResult `json:"results,omitempty"`
	TotalVotes int64                 `json:"total_votes,omitempty"`
}

type OptionSummary struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

type PollSummary struct {
	ID         uint            `json:"id"`
	Question   string          `json:"question"`
	ShareCode  string          `json:"share_code"`
	CreatedAt  time.Time       `json:"created_at"`
	Options    []OptionSummary `json:"options,omitempty"`
	TotalVotes int64           `json:"total_votes"`
}

type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}

type UserStats struct {
	User       UserSummary `json:"user"`
	PollCount  int         `json:"poll_count"`
	TotalVotes int64       `json:"total_votes"`
}

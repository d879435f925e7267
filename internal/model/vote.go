package model

import "time"

// Vote is append-only. The composite unique index on (PollID, VoterIP) makes
// the one-vote-per-address rule hold even under concurrent submissions; a
// constraint violation on insert is the duplicate-vote signal.
type Vote struct {
	ID        uint   `gorm:"primarykey"`
	PollID    uint   `gorm:"not null;uniqueIndex:idx_votes_poll_voter"`
	OptionID  uint   `gorm:"not null;index"`
	VoterIP   string `gorm:"size:45;not null;uniqueIndex:idx_votes_poll_voter"`
	CreatedAt time.Time
}

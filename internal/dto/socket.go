package dto

// Realtime channel event names.
const (
	SocketEventJoinPoll   = "join_poll"
	SocketEventLeavePoll  = "leave_poll"
	SocketEventJoined     = "joined"
	SocketEventVoteUpdate = "vote_update"
)

// SocketMessage is a client-to-server frame on the realtime channel, and also
// the shape of the `joined` acknowledgment.
type SocketMessage struct {
	Event  string `json:"event"`
	PollID uint   `json:"poll_id"`
}

// VoteUpdateMessage is pushed to every subscriber of a poll's group whenever a
// vote is admitted.
type VoteUpdateMessage struct {
	Event      string                `json:"event"`
	PollID     uint                  `json:"poll_id"`
	Results    map[uint]OptionResult `json:"results"`
	TotalVotes int64                 `json:"total_votes"`
}

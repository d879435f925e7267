package dto

type RegisterRequest struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type CreatePollRequest struct {
	Question string   `json:"question" form:"question"`
	Options  []string `json:"options" form:"options"`
}

type VoteRequest struct {
	PollID   uint `json:"poll_id" form:"poll_id"`
	OptionID uint `json:"option_id" form:"option_id"`
}

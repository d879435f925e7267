package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pollify/backend/internal/dto"
	"github.com/pollify/backend/internal/model"
	"github.com/pollify/backend/internal/service"
)

type PollController interface {
	Dashboard(c echo.Context) error
	CreatePoll(c echo.Context) error
	PollDetail(c echo.Context) error
	Vote(c echo.Context) error
}

type pollController struct {
	authService service.AuthService
	pollService service.PollService
	voteService service.VoteService
}

func newPollController(authService service.AuthService, pollService service.PollService, voteService service.VoteService) PollController {
	return &pollController{
		authService: authService,
		pollService: pollService,
		voteService: voteService,
	}
}

func (p *pollController) Dashboard(c echo.Context) error {
	userID := c.Get(dto.UserIDContextKey).(uint)

	user, err := p.authService.GetUser(userID)
	if err != nil {
		return respondError(c, err)
	}

	polls, err := p.pollService.ListByUser(userID)
	if err != nil {
		return respondError(c, err)
	}

	summaries := make([]dto.PollSummary, 0, len(polls))
	for _, poll := range polls {
		total, err := p.pollService.TotalVotes(poll.ID)
		if err != nil {
			return respondError(c, err)
		}
		summaries = append(summaries, pollSummary(poll, total))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user": dto.UserSummary{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			IsAdmin:  user.IsAdmin,
		},
		"polls": summaries,
	})
}

func (p *pollController) CreatePoll(c echo.Context) error {
	userID := c.Get(dto.UserIDContextKey).(uint)

	var request dto.CreatePollRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "malformed request"})
	}

	poll, err := p.pollService.CreatePoll(userID, request)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, pollSummary(poll, 0))
}

func (p *pollController) PollDetail(c echo.Context) error {
	shareCode := c.Param("shareCode")

	poll, err := p.pollService.GetByShareCode(shareCode)
	if err != nil {
		return respondError(c, err)
	}

	results, err := p.pollService.Results(poll.ID)
	if err != nil {
		return respondError(c, err)
	}

	qrCode, err := p.pollService.QRCodePNG(poll.ShareCode)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"poll":        pollSummary(poll, results.TotalVotes),
		"results":     results.Results,
		"total_votes": results.TotalVotes,
		"poll_url":    p.pollService.ShareURL(poll.ShareCode),
		"qr_code":     qrCode,
	})
}

// Vote always answers with a structured success/failure object; a duplicate
// vote is a 200 with success=false rather than an HTTP error.
func (p *pollController) Vote(c echo.Context) error {
	var request dto.VoteRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, dto.VoteResponse{Success: false, Message: "malformed request"})
	}
	if request.PollID == 0 || request.OptionID == 0 {
		return c.JSON(http.StatusBadRequest, dto.VoteResponse{Success: false, Message: "poll_id and option_id are required"})
	}

	results, err := p.voteService.CastVote(request, c.RealIP())
	if err != nil {
		switch {
		case errors.Is(err, dto.ErrDuplicateVote):
			return c.JSON(http.StatusOK, dto.VoteResponse{
				Success: false,
				Message: "You have already voted on this poll",
			})
		case errors.Is(err, dto.ErrNotFound):
			return c.JSON(http.StatusNotFound, dto.VoteResponse{Success: false, Message: "poll or option not found"})
		case errors.Is(err, dto.ErrValidation):
			return c.JSON(http.StatusBadRequest, dto.VoteResponse{Success: false, Message: err.Error()})
		default:
			return respondError(c, err)
		}
	}

	return c.JSON(http.StatusOK, dto.VoteResponse{
		Success:    true,
		Results:    results.Results,
		TotalVotes: results.TotalVotes,
	})
}

func pollSummary(poll model.Poll, totalVotes int64) dto.PollSummary {
	options := make([]dto.OptionSummary, 0, len(poll.Options))
	for _, option := range poll.Options {
		options = append(options, dto.OptionSummary{ID: option.ID, Text: option.Text})
	}
	return dto.PollSummary{
		ID:         poll.ID,
		Question:   poll.Question,
		ShareCode:  poll.ShareCode,
		CreatedAt:  poll.CreatedAt,
		Options:    options,
		TotalVotes: totalVotes,
	}
}

package controller

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pollify/backend/internal/dto"
	"github.com/pollify/backend/internal/service"
)

type AdminController interface {
	Dashboard(c echo.Context) error
	DeleteUser(c echo.Context) error
	DeletePoll(c echo.Context) error
}

type adminController struct {
	adminService service.AdminService
}

func newAdminController(adminService service.AdminService) AdminController {
	return &adminController{
		adminService: adminService,
	}
}

func (a *adminController) Dashboard(c echo.Context) error {
	stats, err := a.adminService.UserStats()
	if err != nil {
		return respondError(c, err)
	}

	polls, err := a.adminService.ListPolls()
	if err != nil {
		return respondError(c, err)
	}

	summaries := make([]dto.PollSummary, 0, len(polls))
	for _, poll := range polls {
		total, err := a.adminService.TotalVotes(poll.ID)
		if err != nil {
			return respondError(c, err)
		}
		summaries = append(summaries, pollSummary(poll, total))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user_stats": stats,
		"polls":      summaries,
	})
}

func (a *adminController) DeleteUser(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid user id"})
	}

	if err := a.adminService.DeleteUser(id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "user deleted"})
}

func (a *adminController) DeletePoll(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid poll id"})
	}

	if err := a.adminService.DeletePoll(id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "poll deleted"})
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

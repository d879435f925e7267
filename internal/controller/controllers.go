package controller

import (
	"github.com/labstack/echo/v4"
	"github.com/pollify/backend/internal/service"
)

type Controllers interface {
	Auth() AuthController
	Poll() PollController
	Admin() AdminController
	Realtime() RealtimeController
	Info() InfoController

	Route(e *echo.Echo)
}

type controllers struct {
	authController     AuthController
	pollController     PollController
	adminController    AdminController
	realtimeController RealtimeController
	infoController     InfoController
}

func NewControllers(services service.Services) Controllers {
	authController := newAuthController(services.Auth())
	pollController := newPollController(services.Auth(), services.Poll(), services.Vote())
	adminController := newAdminController(services.Admin())
	realtimeController := newRealtimeController(services.Broker())
	infoController := newInfoController()
	return &controllers{
		authController:     authController,
		pollController:     pollController,
		adminController:    adminController,
		realtimeController: realtimeController,
		infoController:     infoController,
	}
}

func (c controllers) Auth() AuthController {
	return c.authController
}

func (c controllers) Poll() PollController {
	return c.pollController
}

func (c controllers) Admin() AdminController {
	return c.adminController
}

func (c controllers) Realtime() RealtimeController {
	return c.realtimeController
}

func (c controllers) Info() InfoController {
	return c.infoController
}

func (c controllers) Route(e *echo.Echo) {
	e.GET("/", c.infoController.Info)

	e.POST("/register", c.authController.Register)
	e.POST("/login", c.authController.Login)
	e.POST("/logout", c.authController.Logout)

	e.GET("/dashboard", c.pollController.Dashboard, RequireUser)
	e.POST("/polls", c.pollController.CreatePoll, RequireUser)
	e.GET("/poll/:shareCode", c.pollController.PollDetail)
	e.POST("/vote", c.pollController.Vote)

	e.GET("/admin", c.adminController.Dashboard, RequireAdmin)
	e.DELETE("/admin/users/:id", c.adminController.DeleteUser, RequireAdmin)
	e.DELETE("/admin/polls/:id", c.adminController.DeletePoll, RequireAdmin)

	e.GET("/ws", c.realtimeController.Stream)
}

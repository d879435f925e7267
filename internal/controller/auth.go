package controller

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/pollify/backend/internal/dto"
	"github.com/pollify/backend/internal/service"
)

type AuthController interface {
	Register(c echo.Context) error
	Login(c echo.Context) error
	Logout(c echo.Context) error
}

type authController struct {
	authService service.AuthService
}

func newAuthController(authService service.AuthService) AuthController {
	return &authController{
		authService: authService,
	}
}

func (a *authController) Register(c echo.Context) error {
	var request dto.RegisterRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "malformed request"})
	}

	user, err := a.authService.Register(request)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.UserSummary{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		IsAdmin:  user.IsAdmin,
	})
}

func (a *authController) Login(c echo.Context) error {
	var request dto.LoginRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "malformed request"})
	}

	user, err := a.authService.Login(request)
	if err != nil {
		return respondError(c, err)
	}

	sess, err := session.Get(dto.SessionName, c)
	if err != nil {
		return respondError(c, err)
	}
	sess.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
	}
	sess.Values[dto.SessionUserID] = user.ID
	sess.Values[dto.SessionUsername] = user.Username
	sess.Values[dto.SessionIsAdmin] = user.IsAdmin
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, dto.UserSummary{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		IsAdmin:  user.IsAdmin,
	})
}

func (a *authController) Logout(c echo.Context) error {
	sess, err := session.Get(dto.SessionName, c)
	if err == nil {
		sess.Options = &sessions.Options{Path: "/", MaxAge: -1}
		sess.Values = map[interface{}]interface{}{}
		_ = sess.Save(c.Request(), c.Response())
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

package controller

import (
	"net/http"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/pollify/backend/internal/dto"
)

// RequireUser guards routes behind a logged-in session. The session's user id
// is placed on the echo context for the handler.
func RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := session.Get(dto.SessionName, c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "authentication required"})
		}

		userID, ok := sess.Values[dto.SessionUserID].(uint)
		if !ok {
			return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "authentication required"})
		}

		c.Set(dto.UserIDContextKey, userID)
		return next(c)
	}
}

// RequireAdmin additionally requires the session's admin flag. Non-admin
// sessions are denied without any state mutation.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return RequireUser(func(c echo.Context) error {
		sess, err := session.Get(dto.SessionName, c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "authentication required"})
		}

		if isAdmin, ok := sess.Values[dto.SessionIsAdmin].(bool); !ok || !isAdmin {
			return c.JSON(http.StatusForbidden, dto.ErrorResponse{Message: "access denied"})
		}

		return next(c)
	})
}

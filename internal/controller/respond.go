package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pollify/backend/internal/dto"
	"github.com/sirupsen/logrus"
)

// respondError maps the service error taxonomy onto HTTP responses. Internal
// failures are logged and hidden behind a generic message.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, dto.ErrValidation):
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, dto.ErrNotAuthorized):
		return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, dto.ErrNotFound):
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "not found"})
	default:
		logrus.Errorf("Unhandled error on %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "internal server error"})
	}
}

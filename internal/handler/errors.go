package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"lightbnb/internal/middleware"
	"lightbnb/internal/store"
)

// fail turns a store error into an HTTP error. Unexpected errors reach the
// client as a generic message and keep the cause as the internal error for
// the request logger.
func (h *Handler) fail(op string, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, "already exists")
	case errors.Is(err, store.ErrInvalidReference):
		return echo.NewHTTPError(http.StatusBadRequest, "referenced record does not exist")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error").
		SetInternal(fmt.Errorf("%s: %w", op, err))
}

func badRequest(msg string) error {
	return echo.NewHTTPError(http.StatusBadRequest, msg)
}

func callerID(c echo.Context) (int64, error) {
	uid, ok := middleware.UserID(c)
	if !ok {
		return 0, echo.ErrUnauthorized
	}
	return uid, nil
}

// Validator adapts go-playground/validator to echo.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{v: validator.New(validator.WithRequiredStructEnabled())}
}

func (cv *Validator) Validate(i any) error {
	if err := cv.v.Struct(i); err != nil {
		return badRequest(err.Error())
	}
	return nil
}

// bind decodes the request body into dst and validates it.
func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return badRequest("malformed request body")
	}
	return c.Validate(dst)
}

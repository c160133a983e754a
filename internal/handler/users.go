package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"lightbnb/internal/auth"
	"lightbnb/internal/middleware"
	"lightbnb/internal/model"
	"lightbnb/internal/store"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

func (h *Handler) Register(c echo.Context) error {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return h.fail("register", err)
	}
	u := &model.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Password: hash,
	}
	if err := h.store.CreateUser(c.Request().Context(), u); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return echo.NewHTTPError(http.StatusConflict, "email already registered")
		}
		return h.fail("register", err)
	}

	return h.startSession(c, http.StatusCreated, u)
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	u, err := h.store.UserByEmail(c.Request().Context(), strings.TrimSpace(req.Email))
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return h.fail("login", err)
	}
	// same answer for unknown email and wrong password
	if u == nil || !auth.CheckPassword(u.Password, req.Password) {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	return h.startSession(c, http.StatusOK, u)
}

func (h *Handler) startSession(c echo.Context, status int, u *model.User) error {
	tok, err := auth.MakeToken(u.ID, h.opts.Secret, h.opts.TokenTTL)
	if err != nil {
		return h.fail("make token", err)
	}
	c.SetCookie(h.cookie(tok, time.Now().Add(h.opts.TokenTTL)))
	return c.JSON(status, sessionResponse{User: u, Token: tok})
}

func (h *Handler) Logout(c echo.Context) error {
	if err := h.revoker.Revoke(c.Request().Context(), middleware.Claims(c)); err != nil {
		return h.fail("logout", err)
	}
	c.SetCookie(h.cookie("", time.Unix(0, 0)))
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Me(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	u, err := h.store.UserByID(c.Request().Context(), uid)
	if err != nil {
		return h.fail("me", err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) cookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     auth.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

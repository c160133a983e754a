// Package handler serves the LightBnB JSON API over echo.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"lightbnb/internal/auth"
	"lightbnb/internal/model"
)

// Store is the part of *store.Store the API needs.
type Store interface {
	CreateUser(ctx context.Context, u *model.User) error
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	UserByID(ctx context.Context, id int64) (*model.User, error)
	SearchProperties(ctx context.Context, f model.PropertyFilter, limit int) ([]model.PropertyListing, error)
	CreateProperty(ctx context.Context, p *model.Property) error
	ReservationsForGuest(ctx context.Context, guestID int64, limit int) ([]model.ReservationSummary, error)
	CreateReservation(ctx context.Context, r *model.Reservation) error
}

type Revoker interface {
	Revoke(ctx context.Context, c *auth.Claims) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Options struct {
	Secret       string
	TokenTTL     time.Duration
	SecureCookie bool
}

type Handler struct {
	store   Store
	revoker Revoker
	db      Pinger
	opts    Options
	log     zerolog.Logger
}

func New(st Store, rv Revoker, db Pinger, opts Options, log zerolog.Logger) *Handler {
	return &Handler{store: st, revoker: rv, db: db, opts: opts, log: log}
}

// Routes mounts the API on e. requireAuth guards every route that acts on
// behalf of the logged-in user; rateLimit only guards the credential
// endpoints.
func (h *Handler) Routes(e *echo.Echo, requireAuth, rateLimit echo.MiddlewareFunc) {
	e.GET("/healthz", h.Healthz)

	users := e.Group("/users")
	users.POST("", h.Register, rateLimit)
	users.POST("/login", h.Login, rateLimit)
	users.POST("/logout", h.Logout, requireAuth)
	users.GET("/me", h.Me, requireAuth)

	api := e.Group("/api")
	api.GET("/properties", h.SearchProperties)
	api.POST("/properties", h.CreateProperty, requireAuth)
	api.GET("/reservations", h.ListReservations, requireAuth)
	api.POST("/reservations", h.CreateReservation, requireAuth)
}

func (h *Handler) Healthz(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		h.log.Warn().Err(err).Msg("health check failed")
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

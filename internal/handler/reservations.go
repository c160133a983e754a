package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"lightbnb/internal/model"
)

const dateLayout = "2006-01-02"

type reservationRequest struct {
	PropertyID int64  `json:"property_id" validate:"required,gt=0"`
	StartDate  string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

func (h *Handler) ListReservations(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	var limit int
	if err := echo.QueryParamsBinder(c).Int("limit", &limit).BindError(); err != nil {
		return badRequest(err.Error())
	}
	if limit, err = checkLimit(limit); err != nil {
		return err
	}

	res, err := h.store.ReservationsForGuest(c.Request().Context(), uid, limit)
	if err != nil {
		return h.fail("list reservations", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"reservations": res})
}

func (h *Handler) CreateReservation(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	var req reservationRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	// both already passed the datetime check
	start, _ := time.Parse(dateLayout, req.StartDate)
	end, _ := time.Parse(dateLayout, req.EndDate)
	if !end.After(start) {
		return badRequest("end_date must be after start_date")
	}

	r := &model.Reservation{
		GuestID:    uid,
		PropertyID: req.PropertyID,
		StartDate:  start,
		EndDate:    end,
	}
	if err := h.store.CreateReservation(c.Request().Context(), r); err != nil {
		return h.fail("create reservation", err)
	}
	return c.JSON(http.StatusCreated, r)
}

package handler

import (
	"math"
	"net/http"

	"github.com/labstack/echo/v4"

	"lightbnb/internal/model"
	"lightbnb/internal/store"
)

const maxLimit = 100

type propertyRequest struct {
	Title             string `json:"title" validate:"required,max=255"`
	Description       string `json:"description"`
	ThumbnailPhotoURL string `json:"thumbnail_photo_url" validate:"omitempty,url"`
	CoverPhotoURL     string `json:"cover_photo_url" validate:"omitempty,url"`
	CostPerNight      int64  `json:"cost_per_night" validate:"gte=0,lte=2147483647"`
	Street            string `json:"street" validate:"required"`
	City              string `json:"city" validate:"required"`
	Province          string `json:"province" validate:"required"`
	PostCode          string `json:"post_code" validate:"required"`
	Country           string `json:"country" validate:"required"`
	ParkingSpaces     int32  `json:"parking_spaces" validate:"gte=0"`
	NumberOfBathrooms int32  `json:"number_of_bathrooms" validate:"gte=0"`
	NumberOfBedrooms  int32  `json:"number_of_bedrooms" validate:"gte=0"`
}

// CreateProperty lists a new property owned by the caller. The cost is
// given in cents.
func (h *Handler) CreateProperty(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	var req propertyRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	p := &model.Property{
		OwnerID:           uid,
		Title:             req.Title,
		Description:       req.Description,
		ThumbnailPhotoURL: req.ThumbnailPhotoURL,
		CoverPhotoURL:     req.CoverPhotoURL,
		CostPerNight:      req.CostPerNight,
		Street:            req.Street,
		City:              req.City,
		Province:          req.Province,
		PostCode:          req.PostCode,
		Country:           req.Country,
		ParkingSpaces:     req.ParkingSpaces,
		NumberOfBathrooms: req.NumberOfBathrooms,
		NumberOfBedrooms:  req.NumberOfBedrooms,
		Active:            true,
	}
	if err := h.store.CreateProperty(c.Request().Context(), p); err != nil {
		return h.fail("create property", err)
	}
	return c.JSON(http.StatusCreated, p)
}

// SearchProperties answers GET /api/properties. Prices in the query are in
// dollars; empty parameters are ignored.
func (h *Handler) SearchProperties(c echo.Context) error {
	f, limit, err := parseSearch(c)
	if err != nil {
		return err
	}
	props, err := h.store.SearchProperties(c.Request().Context(), f, limit)
	if err != nil {
		return h.fail("search properties", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"properties": props})
}

func parseSearch(c echo.Context) (model.PropertyFilter, int, error) {
	var (
		f                  model.PropertyFilter
		city               string
		ownerID            int64
		minPrice, maxPrice float64
		minRating          float64
		limit              int
	)
	err := echo.QueryParamsBinder(c).
		String("city", &city).
		Int64("owner_id", &ownerID).
		Float64("minimum_price_per_night", &minPrice).
		Float64("maximum_price_per_night", &maxPrice).
		Float64("minimum_rating", &minRating).
		Bool("include_unrated", &f.IncludeUnrated).
		Int("limit", &limit).
		BindError()
	if err != nil {
		return f, 0, badRequest(err.Error())
	}

	set := func(name string) bool { return c.QueryParam(name) != "" }

	if set("city") {
		f.City = &city
	}
	if set("owner_id") {
		f.OwnerID = &ownerID
	}
	if set("minimum_price_per_night") {
		if minPrice < 0 || math.IsNaN(minPrice) {
			return f, 0, badRequest("minimum_price_per_night must not be negative")
		}
		f.MinPricePerNight = ptr(toCents(minPrice))
	}
	if set("maximum_price_per_night") {
		if maxPrice < 0 || math.IsNaN(maxPrice) {
			return f, 0, badRequest("maximum_price_per_night must not be negative")
		}
		f.MaxPricePerNight = ptr(toCents(maxPrice))
	}
	if f.MinPricePerNight != nil && f.MaxPricePerNight != nil && *f.MinPricePerNight > *f.MaxPricePerNight {
		return f, 0, badRequest("minimum price exceeds maximum price")
	}
	if set("minimum_rating") {
		if !(minRating >= 0 && minRating <= 5) {
			return f, 0, badRequest("minimum_rating must be between 0 and 5")
		}
		f.MinRating = &minRating
	}
	if limit, err = checkLimit(limit); err != nil {
		return f, 0, err
	}
	return f, limit, nil
}

func checkLimit(n int) (int, error) {
	if n < 0 || n > maxLimit {
		return 0, badRequest("limit must be between 0 and 100")
	}
	return n, nil
}

func toCents(dollars float64) int64 {
	c := math.Round(dollars * 100)
	if c > store.MaxPricePerNight {
		return store.MaxPricePerNight
	}
	return int64(c)
}

func ptr[T any](v T) *T { return &v }

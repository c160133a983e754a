package model

import "time"

type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"` // bcrypt hash
}

// Property is a rental listing. CostPerNight is in cents.
type Property struct {
	ID                int64  `json:"id"`
	OwnerID           int64  `json:"owner_id"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	ThumbnailPhotoURL string `json:"thumbnail_photo_url"`
	CoverPhotoURL     string `json:"cover_photo_url"`
	CostPerNight      int64  `json:"cost_per_night"`
	Street            string `json:"street"`
	City              string `json:"city"`
	Province          string `json:"province"`
	PostCode          string `json:"post_code"`
	Country           string `json:"country"`
	ParkingSpaces     int32  `json:"parking_spaces"`
	NumberOfBathrooms int32  `json:"number_of_bathrooms"`
	NumberOfBedrooms  int32  `json:"number_of_bedrooms"`
	Active            bool   `json:"active"`
}

// PropertyListing is a property as returned by a search, with its
// average review rating.
type PropertyListing struct {
	Property
	AverageRating float64 `json:"average_rating"`
}

type Reservation struct {
	ID         int64     `json:"id"`
	GuestID    int64     `json:"guest_id"`
	PropertyID int64     `json:"property_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
}

// ReservationSummary is one row of a guest's reservation list.
type ReservationSummary struct {
	ID            int64     `json:"id"`
	PropertyID    int64     `json:"property_id"`
	Title         string    `json:"title"`
	CostPerNight  int64     `json:"cost_per_night"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	AverageRating float64   `json:"average_rating"`
}

// PropertyFilter narrows a property search. A nil field is not applied.
// Prices are in cents.
type PropertyFilter struct {
	City             *string
	OwnerID          *int64
	MinPricePerNight *int64
	MaxPricePerNight *int64
	MinRating        *float64

	// IncludeUnrated keeps properties that have no reviews yet; their
	// average rating is reported as 0.
	IncludeUnrated bool
}

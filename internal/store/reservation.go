package store

import (
	"context"

	"lightbnb/internal/model"
)

func (s *Store) CreateReservation(ctx context.Context, r *model.Reservation) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO reservations (guest_id, property_id, start_date, end_date)
		 VALUES ($1,$2,$3,$4)
		 RETURNING id, guest_id, property_id, start_date, end_date`,
		r.GuestID, r.PropertyID, r.StartDate, r.EndDate,
	).Scan(&r.ID, &r.GuestID, &r.PropertyID, &r.StartDate, &r.EndDate)
	return wrap("create reservation", err)
}

// ReservationsForGuest lists a guest's reservations by start date, at most
// limit of them. Reservations of properties nobody has reviewed yet are not
// listed, since the average rating comes from an inner join on reviews.
func (s *Store) ReservationsForGuest(ctx context.Context, guestID int64, limit int) ([]model.ReservationSummary, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := s.pool.Query(ctx,
		`SELECT res.id, p.id, p.title, p.cost_per_night, res.start_date, res.end_date,
		        AVG(r.rating)::float8 AS average_rating
		 FROM reservations res
		 JOIN properties p ON p.id = res.property_id
		 JOIN property_reviews r ON r.property_id = p.id
		 WHERE res.guest_id = $1
		 GROUP BY p.id, res.id
		 ORDER BY res.start_date, res.id
		 LIMIT $2`, guestID, limit,
	)
	if err != nil {
		return nil, wrap("reservations for guest", err)
	}
	defer rows.Close()

	out := []model.ReservationSummary{}
	for rows.Next() {
		var r model.ReservationSummary
		if err := rows.Scan(
			&r.ID, &r.PropertyID, &r.Title, &r.CostPerNight, &r.StartDate, &r.EndDate,
			&r.AverageRating,
		); err != nil {
			return nil, wrap("reservations for guest", err)
		}
		out = append(out, r)
	}
	return out, wrap("reservations for guest", rows.Err())
}

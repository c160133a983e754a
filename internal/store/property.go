package store

import (
	"context"
	"math"

	"github.com/jackc/pgx/v5"

	"lightbnb/internal/model"
)

const (
	DefaultLimit = 10

	// MaxPricePerNight is the open upper price bound, in cents. It is the
	// largest value cost_per_night can hold.
	MaxPricePerNight = math.MaxInt32
)

const propertyColumns = `p.id, p.owner_id, p.title, p.description, p.thumbnail_photo_url,
	p.cover_photo_url, p.cost_per_night, p.street, p.city, p.province, p.post_code,
	p.country, p.parking_spaces, p.number_of_bathrooms, p.number_of_bedrooms, p.active`

func propertyFields(p *model.Property) []any {
	return []any{
		&p.ID, &p.OwnerID, &p.Title, &p.Description, &p.ThumbnailPhotoURL,
		&p.CoverPhotoURL, &p.CostPerNight, &p.Street, &p.City, &p.Province, &p.PostCode,
		&p.Country, &p.ParkingSpaces, &p.NumberOfBathrooms, &p.NumberOfBedrooms, &p.Active,
	}
}

// CreateProperty inserts p and overwrites it with the persisted row,
// including the generated id.
func (s *Store) CreateProperty(ctx context.Context, p *model.Property) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO properties AS p (owner_id, title, description, thumbnail_photo_url,
		   cover_photo_url, cost_per_night, street, city, province, post_code, country,
		   parking_spaces, number_of_bathrooms, number_of_bedrooms, active)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		 RETURNING `+propertyColumns,
		p.OwnerID, p.Title, p.Description, p.ThumbnailPhotoURL,
		p.CoverPhotoURL, p.CostPerNight, p.Street, p.City, p.Province, p.PostCode, p.Country,
		p.ParkingSpaces, p.NumberOfBathrooms, p.NumberOfBedrooms, p.Active,
	).Scan(propertyFields(p)...)
	return wrap("create property", err)
}

// SearchProperties returns at most limit properties matching f, cheapest
// first, each with its average rating. Properties without reviews are left
// out unless f.IncludeUnrated is set.
func (s *Store) SearchProperties(ctx context.Context, f model.PropertyFilter, limit int) ([]model.PropertyListing, error) {
	sql, args := propertySearch(f, limit)
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrap("search properties", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.PropertyListing, error) {
		var l model.PropertyListing
		err := row.Scan(append(propertyFields(&l.Property), &l.AverageRating)...)
		return l, err
	})
	if err != nil {
		return nil, wrap("search properties", err)
	}
	return out, nil
}

func propertySearch(f model.PropertyFilter, limit int) (string, []any) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	join, avg := "JOIN", "AVG(r.rating)::float8"
	if f.IncludeUnrated {
		join, avg = "LEFT JOIN", "COALESCE(AVG(r.rating), 0)::float8"
	}

	var where, having []cond
	if f.City != nil {
		where = append(where, pred("p.city ILIKE ?", containsPattern(*f.City)))
	}
	if f.OwnerID != nil {
		where = append(where, pred("p.owner_id = ?", *f.OwnerID))
	}
	if f.MinPricePerNight != nil || f.MaxPricePerNight != nil {
		lo, hi := int64(0), int64(MaxPricePerNight)
		if f.MinPricePerNight != nil {
			lo = clampPrice(*f.MinPricePerNight)
		}
		if f.MaxPricePerNight != nil {
			hi = clampPrice(*f.MaxPricePerNight)
		}
		where = append(where, pred("p.cost_per_night BETWEEN ? AND ?", lo, hi))
	}
	if f.MinRating != nil {
		having = append(having, pred(avg+" >= ?", *f.MinRating))
	}

	var st statement
	st.write(`SELECT ` + propertyColumns + `, ` + avg + ` AS average_rating
		FROM properties p
		` + join + ` property_reviews r ON r.property_id = p.id`)
	st.clause("WHERE", where)
	st.write(" GROUP BY p.id")
	st.clause("HAVING", having)
	st.write(" ORDER BY p.cost_per_night, p.id LIMIT ?", limit)
	return st.String(), st.Args()
}

func clampPrice(v int64) int64 {
	return min(max(v, 0), MaxPricePerNight)
}

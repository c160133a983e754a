// Command seed fills a development database with a few users, properties,
// reservations and reviews. Running it twice reuses the existing users.
package main

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"lightbnb/internal/auth"
	"lightbnb/internal/config"
	"lightbnb/internal/database"
	"lightbnb/internal/logger"
	"lightbnb/internal/model"
	"lightbnb/internal/store"
)

// every fixture user logs in with this
const password = "password"

var users = []model.User{
	{Name: "Eva Stanley", Email: "sebastianguerra@ymail.com"},
	{Name: "Louisa Meyer", Email: "jacksonrose@hotmail.com"},
	{Name: "Dominic Parks", Email: "victoriablackwell@outlook.com"},
}

var properties = []model.Property{
	{Title: "Speed lamp", Description: "description", CostPerNight: 93061, Street: "536 Namsub Highway",
		City: "Sotboske", Province: "Quebec", PostCode: "28142", Country: "Canada",
		ParkingSpaces: 6, NumberOfBathrooms: 4, NumberOfBedrooms: 8},
	{Title: "Blank corner", Description: "description", CostPerNight: 85234, Street: "651 Nami Road",
		City: "Bohbatev", Province: "Alberta", PostCode: "83680", Country: "Canada",
		ParkingSpaces: 6, NumberOfBathrooms: 6, NumberOfBedrooms: 7},
	{Title: "Habit mix", Description: "description", CostPerNight: 46058, Street: "1650 Hejto Center",
		City: "Genwezuj", Province: "Newfoundland And Labrador", PostCode: "44583", Country: "Canada",
		ParkingSpaces: 0, NumberOfBathrooms: 5, NumberOfBedrooms: 6},
	{Title: "Headed know", Description: "description", CostPerNight: 82640, Street: "513 Powov Grove",
		City: "Jaebvap", Province: "Ontario", PostCode: "38051", Country: "Canada",
		ParkingSpaces: 0, NumberOfBathrooms: 5, NumberOfBedrooms: 5},
}

func main() {
	log := logger.New("info", "console")
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := database.Migrate(ctx, cfg.DatabaseURL, log); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
	pool, err := database.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("database")
	}
	defer pool.Close()

	if err := seed(ctx, pool, log); err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	log.Info().Msg("seed complete")
}

func seed(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) error {
	st := store.New(pool)

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	ids := make([]int64, 0, len(users))
	for _, u := range users {
		u.Password = hash
		err := st.CreateUser(ctx, &u)
		if errors.Is(err, store.ErrConflict) {
			existing, err := st.UserByEmail(ctx, u.Email)
			if err != nil {
				return err
			}
			log.Info().Str("email", u.Email).Msg("user exists, reusing")
			ids = append(ids, existing.ID)
			continue
		}
		if err != nil {
			return err
		}
		ids = append(ids, u.ID)
	}

	start := time.Date(2018, 9, 11, 0, 0, 0, 0, time.UTC)
	for i, p := range properties {
		p.OwnerID = ids[i%len(ids)]
		p.Active = true
		if err := st.CreateProperty(ctx, &p); err != nil {
			return err
		}

		guest := ids[(i+1)%len(ids)]
		r := model.Reservation{
			GuestID:    guest,
			PropertyID: p.ID,
			StartDate:  start.AddDate(0, i, 0),
			EndDate:    start.AddDate(0, i, 5),
		}
		if err := st.CreateReservation(ctx, &r); err != nil {
			return err
		}

		// the last property stays unreviewed
		if i == len(properties)-1 {
			continue
		}
		_, err := pool.Exec(ctx,
			`INSERT INTO property_reviews (guest_id, property_id, reservation_id, rating, message)
			 VALUES ($1, $2, $3, $4, $5)`,
			guest, p.ID, r.ID, 3+i%3, "messages",
		)
		if err != nil {
			return err
		}
	}
	log.Info().Int("users", len(ids)).Int("properties", len(properties)).Msg("fixtures inserted")
	return nil
}

// Command seed loads a demo data set: a few hosts with properties spread
// around the supported cities, plus one guest account to book with.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/semaphore"

	"stayhub/internal/adapters/observability"
	redisad "stayhub/internal/adapters/redis"
	"stayhub/internal/app"
	"stayhub/internal/domain"
	"stayhub/internal/shared"
	mysqlrepo "stayhub/internal/storage/mysql"
)

type seedProperty struct {
	title    string
	city     string
	country  string
	lat, lon float64
	ptype    domain.PropertyType
	price    string
	guests   int
}

var seedProperties = []seedProperty{
	{"Canal-side loft", "Amsterdam", "Netherlands", 52.3702, 4.8952, domain.PropertyApartment, "140.00", 2},
	{"Jordaan garden house", "Amsterdam", "Netherlands", 52.3747, 4.8807, domain.PropertyHouse, "220.00", 5},
	{"Montmartre studio", "Paris", "France", 48.8867, 2.3431, domain.PropertyRoom, "95.00", 2},
	{"Marais pied-a-terre", "Paris", "France", 48.8589, 2.3622, domain.PropertyApartment, "180.00", 3},
	{"Gracia rooftop flat", "Barcelona", "Spain", 41.4036, 2.1567, domain.PropertyApartment, "120.00", 4},
	{"Costa Brava villa", "Begur", "Spain", 41.9543, 3.2077, domain.PropertyVilla, "390.00", 8},
	{"Kreuzberg altbau", "Berlin", "Germany", 52.4986, 13.4184, domain.PropertyApartment, "85.00", 3},
	{"Trastevere terrace", "Rome", "Italy", 41.8897, 12.4694, domain.PropertyApartment, "150.00", 4},
}

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)
	log.Info().Int("workers", cfg.Workers).Int("properties", len(seedProperties)).Msg("seed starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	auth := app.NewAuthService(repo, noTokens{}, cfg.BcryptCost)
	properties := app.NewPropertyService(repo, cache, int(cfg.CacheTTL.Seconds()))

	host, err := auth.Register(ctx, app.RegisterInput{
		Email:     "host@stayhub.dev",
		Password:  "host-password",
		FirstName: "Demo",
		LastName:  "Host",
		Role:      domain.RoleHost,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed host failed")
	}
	if _, err := auth.Register(ctx, app.RegisterInput{
		Email:     "guest@stayhub.dev",
		Password:  "guest-password",
		FirstName: "Demo",
		LastName:  "Guest",
		Role:      domain.RoleGuest,
	}); err != nil {
		log.Fatal().Err(err).Msg("seed guest failed")
	}

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, sp := range seedProperties {
		sp := sp

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(int64(1))

			price, err := decimal.NewFromString(sp.price)
			if err != nil {
				log.Warn().Str("title", sp.title).Err(err).Msg("bad seed price")
				return
			}
			_, err = properties.Create(ctx, domain.Property{
				Title:         sp.title,
				PropertyType:  sp.ptype,
				PricePerNight: price,
				Latitude:      sp.lat,
				Longitude:     sp.lon,
				Address:       fmt.Sprintf("1 %s Street", sp.city),
				City:          sp.city,
				Country:       sp.country,
				Guests:        sp.guests,
				Bedrooms:      (sp.guests + 1) / 2,
				Beds:          (sp.guests + 1) / 2,
				Bathrooms:     1,
				Amenities:     []string{"wifi", "kitchen"},
				Status:        domain.PropertyActive,
			}, host.ID)
			if err != nil {
				log.Warn().Str("title", sp.title).Err(err).Msg("seed property failed")
				return
			}
			log.Info().Str("title", sp.title).Msg("seed property ok")
		}()
	}

	wg.Wait()
	log.Info().Msg("seed completed")
}

// noTokens satisfies the auth service's issuer; the seeder never logs in.
type noTokens struct{}

func (noTokens) Issue(domain.User) (string, error) { return "", nil }

package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	// registers the pure-Go "sqlite" database/sql driver
	_ "modernc.org/sqlite"

	"clubfloor/internal/domain"
)

// Connect opens the store by DSN prefix: postgres in deployments, sqlite for
// local development and seeding.
func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate brings the schema in line with the domain records.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Venue{},
		&domain.BillSettings{},
		&domain.PricingPolicy{},
		&domain.Table{},
		&domain.Guest{},
		&domain.Cast{},
		&domain.MenuItem{},
		&domain.User{},
		&domain.Session{},
		&domain.SessionGuest{},
		&domain.Order{},
		&domain.Reservation{},
	)
}

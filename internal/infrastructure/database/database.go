package database

import (
	"isoko-backend/internal/domain"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open opens a GORM DB from DSN (Postgres pooler URL).
// PreferSimpleProtocol disables prepared statement caching to avoid 42P05
// ("prepared statement already exists") when using connection poolers (e.g. PgBouncer, Supabase, Render).
// TranslateError lets services detect unique violations via gorm.ErrDuplicatedKey.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{TranslateError: true})
}

// AutoMigrate runs migrations for the marketplace ledger models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Vendor{},
		&domain.GalleryVendorData{},
		&domain.OutsideVendorData{},
		&domain.Buyer{},
		&domain.Listing{},
		&domain.ListingEvent{},
		&domain.Reservation{},
		&domain.Order{},
		&domain.Sharer{},
		&domain.Referral{},
		&domain.Sale{},
		&domain.TrustScore{},
		&domain.WantedListing{},
		&domain.WantedMatch{},
		&domain.Notification{},
	)
}

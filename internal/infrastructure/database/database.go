package database

import (
	"gearshare-backend/internal/domain"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open opens a GORM DB from DSN. PreferSimpleProtocol disables prepared
// statement caching to avoid 42P05 ("prepared statement already exists") when
// running behind a connection pooler (PgBouncer, Supabase, Render).
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
}

// AutoMigrate runs migrations for the record-store entities.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.User{}, &domain.Category{}, &domain.Listing{})
}

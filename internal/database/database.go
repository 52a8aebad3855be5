package database

import (
	"github.com/ilmsadmin/zbase-sub005/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open opens a GORM DB from a Postgres DSN.
// PreferSimpleProtocol disables prepared statement caching to avoid 42P05
// ("prepared statement already exists") behind connection poolers (PgBouncer, Supabase, Render).
// TranslateError lets services match gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated
// instead of driver-specific error codes.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{TranslateError: true})
}

// AutoMigrate runs migrations for all back-office models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Partner{},
		&models.Customer{},
		&models.Product{},
		&models.StockLevel{},
		&models.Invoice{},
		&models.Transaction{},
		&models.Warranty{},
		&models.WarrantyEvent{},
	)
}

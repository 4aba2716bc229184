package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB opens the service's own store and migrates the models it
// owns. Each service passes only its tables; stores are never shared.
func NewPostgresDB(dsn string, models ...any) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			log.Fatalf("failed to auto-migrate: %v", err)
		}
	}

	return db
}

// EnsureBookingIndexes creates the partial index backing the sitter job
// board: pending rows with no sitter assigned are exactly the claimable set.
func EnsureBookingIndexes(db *gorm.DB) {
	db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_claimable
		ON bookings (created_at)
		WHERE status = 'pending' AND sitter_id IS NULL
	`)
}

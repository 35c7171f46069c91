package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewDatabase opens the connection pool that gets injected into the
// repositories. There is deliberately no package-level handle.
func NewDatabase(databaseURL string) *gorm.DB {
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	return db
}

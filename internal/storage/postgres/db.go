package postgres

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open initializes the database connection and performs migrations.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Player{}, &Game{}, &Progress{}); err != nil {
		return nil, err
	}
	return db, nil
}

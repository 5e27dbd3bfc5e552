package db

import (
	"github.com/glebarez/sqlite"
	"github.com/knowbargain/knowbargain/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDatabase opens a Postgres connection for the given DSN, or a local
// sqlite file when the DSN is empty (development default).
func ConnectDatabase(dsn string) error {
	var err error

	if dsn == "" {
		DB, err = gorm.Open(sqlite.Open("knowbargain.db"), &gorm.Config{})
	} else {
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	models := []interface{}{
		&models.User{},
		&models.Deal{},
		&models.Vote{},
		&models.Comment{},
		&models.PriceHistory{},
	}

	migrator := DB.Migrator()

	for _, model := range models {
		if !migrator.HasTable(model) {
			if err := DB.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}

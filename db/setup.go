package db

import (
	"github.com/guilhermetechmakers/autopilot-studio/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectDatabase opens the Postgres handle. The caller owns the handle's
// lifecycle and passes it down explicitly.
func ConnectDatabase(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

func MigrateDatabase(database *gorm.DB) error {
	tables := []interface{}{
		&models.User{},
		&models.Project{},
		&models.Milestone{},
		&models.Task{},
		&models.Proposal{},
		&models.Invoice{},
		&models.Probe{},
		&models.Metric{},
		&models.LogEntry{},
		&models.Alert{},
		&models.HealthCheck{},
	}

	migrator := database.Migrator()

	for _, table := range tables {
		if !migrator.HasTable(table) {
			if err := database.AutoMigrate(table); err != nil {
				return err
			}
		}
	}

	return nil
}

package store

import (
	"fmt"
	"log"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/veslo/hearthguard/internal/models"
)

// Archive is the SQLite sink for alerts rotated out of the live document by
// the retention cap. It only ever grows; the live alerts document remains
// the source of truth for the dashboard.
type Archive struct {
	db *gorm.DB
}

// OpenArchive opens (or creates) the archive database at path and runs the
// schema migration.
func OpenArchive(path string) (*Archive, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("opening alert archive: %w", err)
	}
	if err := db.AutoMigrate(&models.ArchivedAlert{}); err != nil {
		return nil, fmt.Errorf("migrating alert archive: %w", err)
	}
	log.Printf("[store] alert archive opened at %s", path)
	return &Archive{db: db}, nil
}

// Store appends the given alerts to the archive.
func (a *Archive) Store(alerts []models.Alert) error {
	if len(alerts) == 0 {
		return nil
	}
	rows := make([]models.ArchivedAlert, 0, len(alerts))
	for _, alert := range alerts {
		rows = append(rows, models.FromAlert(alert))
	}
	return a.db.Create(&rows).Error
}

// Count returns the number of archived alerts.
func (a *Archive) Count() (int64, error) {
	var n int64
	err := a.db.Model(&models.ArchivedAlert{}).Count(&n).Error
	return n, err
}

// Recent returns up to limit archived alerts, newest first.
func (a *Archive) Recent(limit int) ([]models.ArchivedAlert, error) {
	var rows []models.ArchivedAlert
	err := a.db.Order("id desc").Limit(limit).Find(&rows).Error
	return rows, err
}

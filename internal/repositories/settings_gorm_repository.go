package repositories

import (
	"errors"
	"fmt"

	"quorumhub/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMSettingsRepository is a GORM implementation of SettingsRepository.
// Both paths use ON CONFLICT upserts on the fixed singleton key, so two
// racing first-reads (or a first update) cannot create a second row.
type GORMSettingsRepository struct {
	db *gorm.DB
}

// NewGORMSettingsRepository creates a new instance of GORMSettingsRepository.
func NewGORMSettingsRepository(db *gorm.DB) *GORMSettingsRepository {
	return &GORMSettingsRepository{
		db: db,
	}
}

// Get returns the singleton settings row, creating it with defaults on
// first access.
func (r *GORMSettingsRepository) Get() (*models.Settings, error) {
	var settings models.Settings
	err := r.db.First(&settings, "id = ?", models.SettingsID).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	row := models.DefaultSettings()
	// DoNothing makes the insert a no-op when a concurrent request won
	// the race; the re-read below picks up whichever row landed.
	if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to create default settings: %w", err)
	}
	if err := r.db.First(&settings, "id = ?", models.SettingsID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload settings: %w", err)
	}
	return &settings, nil
}

// Update applies the given column assignments to the singleton row,
// creating it first (defaults merged with the assignments) if it does
// not exist yet.
func (r *GORMSettingsRepository) Update(fields map[string]interface{}) (*models.Settings, error) {
	if len(fields) == 0 {
		return r.Get()
	}

	row := mergeSettings(models.DefaultSettings(), fields)
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(fields),
	}).Create(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	var settings models.Settings
	if err := r.db.First(&settings, "id = ?", models.SettingsID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload settings: %w", err)
	}
	return &settings, nil
}

// mergeSettings overlays column assignments onto a settings value. Used
// to build the insert half of the upsert so a freshly created row also
// carries the requested changes.
func mergeSettings(base models.Settings, fields map[string]interface{}) models.Settings {
	for column, value := range fields {
		s, ok := value.(string)
		if !ok {
			continue
		}
		switch column {
		case "old_ui_url":
			base.OldUIURL = s
		case "old_ui_status":
			base.OldUIStatus = s
		case "new_ui_url":
			base.NewUIURL = s
		case "new_ui_status":
			base.NewUIStatus = s
		}
	}
	return base
}

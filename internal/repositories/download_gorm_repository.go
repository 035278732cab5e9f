package repositories

import (
	"errors"
	"fmt"

	"quorumhub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMDownloadRepository is a GORM implementation of DownloadRepository.
type GORMDownloadRepository struct {
	db *gorm.DB
}

// NewGORMDownloadRepository creates a new instance of GORMDownloadRepository.
func NewGORMDownloadRepository(db *gorm.DB) *GORMDownloadRepository {
	return &GORMDownloadRepository{
		db: db,
	}
}

// GetAll retrieves all downloads from the database. No ordering is
// guaranteed; callers sort client-side if they care.
func (r *GORMDownloadRepository) GetAll() ([]models.Download, error) {
	var downloads []models.Download
	if err := r.db.Find(&downloads).Error; err != nil {
		return nil, fmt.Errorf("failed to get all downloads: %w", err)
	}
	return downloads, nil
}

// GetByID retrieves a single download by its ID from the database.
func (r *GORMDownloadRepository) GetByID(id string) (*models.Download, error) {
	var download models.Download
	if err := r.db.First(&download, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("download %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get download by ID %s: %w", id, err)
	}
	return &download, nil
}

// Create creates a new download in the database, assigning an ID if the
// caller did not set one.
func (r *GORMDownloadRepository) Create(download *models.Download) error {
	if download.ID == "" {
		download.ID = uuid.New().String()
	}
	if download.Status == "" {
		download.Status = models.StatusWorking
	}
	if err := r.db.Create(download).Error; err != nil {
		return fmt.Errorf("failed to create download: %w", err)
	}
	return nil
}

// Update applies the given column assignments to an existing download
// and returns the merged row. Columns not present in fields keep their
// stored values.
func (r *GORMDownloadRepository) Update(id string, fields map[string]interface{}) (*models.Download, error) {
	if len(fields) > 0 {
		res := r.db.Model(&models.Download{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, fmt.Errorf("failed to update download %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, fmt.Errorf("download %s: %w", id, ErrNotFound)
		}
	}
	return r.GetByID(id)
}

// Delete removes a download by its ID. Deleting an absent row is not an
// error; the operation is idempotent.
func (r *GORMDownloadRepository) Delete(id string) error {
	if err := r.db.Delete(&models.Download{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete download %s: %w", id, err)
	}
	return nil
}

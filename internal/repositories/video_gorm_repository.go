package repositories

import (
	"errors"
	"fmt"

	"quorumhub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMVideoRepository is a GORM implementation of VideoRepository.
type GORMVideoRepository struct {
	db *gorm.DB
}

// NewGORMVideoRepository creates a new instance of GORMVideoRepository.
func NewGORMVideoRepository(db *gorm.DB) *GORMVideoRepository {
	return &GORMVideoRepository{
		db: db,
	}
}

// GetAll retrieves all videos from the database.
func (r *GORMVideoRepository) GetAll() ([]models.Video, error) {
	var videos []models.Video
	if err := r.db.Find(&videos).Error; err != nil {
		return nil, fmt.Errorf("failed to get all videos: %w", err)
	}
	return videos, nil
}

// GetByID retrieves a single video by its ID from the database.
func (r *GORMVideoRepository) GetByID(id string) (*models.Video, error) {
	var video models.Video
	if err := r.db.First(&video, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("video %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get video by ID %s: %w", id, err)
	}
	return &video, nil
}

// Create creates a new video in the database, assigning an ID if the
// caller did not set one.
func (r *GORMVideoRepository) Create(video *models.Video) error {
	if video.ID == "" {
		video.ID = uuid.New().String()
	}
	if err := r.db.Create(video).Error; err != nil {
		return fmt.Errorf("failed to create video: %w", err)
	}
	return nil
}

// Update applies the given column assignments to an existing video and
// returns the merged row.
func (r *GORMVideoRepository) Update(id string, fields map[string]interface{}) (*models.Video, error) {
	if len(fields) > 0 {
		res := r.db.Model(&models.Video{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, fmt.Errorf("failed to update video %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, fmt.Errorf("video %s: %w", id, ErrNotFound)
		}
	}
	return r.GetByID(id)
}

// Delete removes a video by its ID. Idempotent: deleting an absent row
// is not an error.
func (r *GORMVideoRepository) Delete(id string) error {
	if err := r.db.Delete(&models.Video{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete video %s: %w", id, err)
	}
	return nil
}

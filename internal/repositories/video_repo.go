package repositories

import "quorumhub/internal/models"

// VideoRepository defines the interface for video data access.
type VideoRepository interface {
	GetAll() ([]models.Video, error)
	GetByID(id string) (*models.Video, error)
	Create(video *models.Video) error
	Update(id string, fields map[string]interface{}) (*models.Video, error)
	Delete(id string) error
}

package repositories

import "quorumhub/internal/models"

// DownloadRepository defines the interface for download data access.
type DownloadRepository interface {
	GetAll() ([]models.Download, error)
	GetByID(id string) (*models.Download, error)
	Create(download *models.Download) error
	Update(id string, fields map[string]interface{}) (*models.Download, error)
	Delete(id string) error
}

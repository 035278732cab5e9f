package repositories

import (
	"fmt"
	"sync"
	"time"

	"quorumhub/internal/models"

	"github.com/google/uuid"
)

// MockDownloadRepository is an in-memory implementation of DownloadRepository.
type MockDownloadRepository struct {
	downloads map[string]models.Download
	mu        sync.RWMutex
}

// NewMockDownloadRepository creates a new instance of MockDownloadRepository.
func NewMockDownloadRepository() *MockDownloadRepository {
	return &MockDownloadRepository{
		downloads: make(map[string]models.Download),
	}
}

// GetAll returns all downloads.
func (r *MockDownloadRepository) GetAll() ([]models.Download, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Download, 0, len(r.downloads))
	for _, d := range r.downloads {
		list = append(list, d)
	}
	return list, nil
}

// GetByID returns a download by its ID.
func (r *MockDownloadRepository) GetByID(id string) (*models.Download, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	download, ok := r.downloads[id]
	if !ok {
		return nil, fmt.Errorf("download %s: %w", id, ErrNotFound)
	}
	return &download, nil
}

// Create adds a new download.
func (r *MockDownloadRepository) Create(download *models.Download) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if download.ID == "" {
		download.ID = uuid.New().String()
	}
	if download.Status == "" {
		download.Status = models.StatusWorking
	}
	if download.CreatedAt.IsZero() {
		download.CreatedAt = time.Now()
	}
	r.downloads[download.ID] = *download
	return nil
}

// Update merges column assignments onto an existing download.
func (r *MockDownloadRepository) Update(id string, fields map[string]interface{}) (*models.Download, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	download, ok := r.downloads[id]
	if !ok {
		return nil, fmt.Errorf("download %s: %w", id, ErrNotFound)
	}
	for column, value := range fields {
		s, ok := value.(string)
		if !ok {
			continue
		}
		switch column {
		case "title":
			download.Title = s
		case "description":
			download.Description = s
		case "url":
			download.URL = s
		case "status":
			download.Status = s
		}
	}
	download.UpdatedAt = time.Now()
	r.downloads[id] = download
	return &download, nil
}

// Delete removes a download by its ID. Absent rows are ignored.
func (r *MockDownloadRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.downloads, id)
	return nil
}

package repositories

import (
	"fmt"
	"sync"
	"time"

	"quorumhub/internal/models"

	"github.com/google/uuid"
)

// MockVideoRepository is an in-memory implementation of VideoRepository.
type MockVideoRepository struct {
	videos map[string]models.Video
	mu     sync.RWMutex
}

// NewMockVideoRepository creates a new instance of MockVideoRepository.
func NewMockVideoRepository() *MockVideoRepository {
	return &MockVideoRepository{
		videos: make(map[string]models.Video),
	}
}

// GetAll returns all videos.
func (r *MockVideoRepository) GetAll() ([]models.Video, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Video, 0, len(r.videos))
	for _, v := range r.videos {
		list = append(list, v)
	}
	return list, nil
}

// GetByID returns a video by its ID.
func (r *MockVideoRepository) GetByID(id string) (*models.Video, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	video, ok := r.videos[id]
	if !ok {
		return nil, fmt.Errorf("video %s: %w", id, ErrNotFound)
	}
	return &video, nil
}

// Create adds a new video.
func (r *MockVideoRepository) Create(video *models.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if video.ID == "" {
		video.ID = uuid.New().String()
	}
	if video.CreatedAt.IsZero() {
		video.CreatedAt = time.Now()
	}
	r.videos[video.ID] = *video
	return nil
}

// Update merges column assignments onto an existing video.
func (r *MockVideoRepository) Update(id string, fields map[string]interface{}) (*models.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	video, ok := r.videos[id]
	if !ok {
		return nil, fmt.Errorf("video %s: %w", id, ErrNotFound)
	}
	for column, value := range fields {
		s, ok := value.(string)
		if !ok {
			continue
		}
		switch column {
		case "title":
			video.Title = s
		case "description":
			video.Description = s
		case "url":
			video.URL = s
		}
	}
	video.UpdatedAt = time.Now()
	r.videos[id] = video
	return &video, nil
}

// Delete removes a video by its ID. Absent rows are ignored.
func (r *MockVideoRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.videos, id)
	return nil
}

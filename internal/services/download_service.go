package services

import (
	"fmt"
	"log"

	"quorumhub/internal/api"
	"quorumhub/internal/models"
	"quorumhub/internal/repositories"

	"quorumhub/pkg/rabbitmq"
)

// DownloadService handles business logic for download entries.
type DownloadService struct {
	repo      repositories.DownloadRepository
	publisher EventPublisher
}

// NewDownloadService creates a new DownloadService. publisher may be
// nil when messaging is disabled.
func NewDownloadService(repo repositories.DownloadRepository, publisher EventPublisher) *DownloadService {
	return &DownloadService{
		repo:      repo,
		publisher: publisher,
	}
}

// GetAllDownloads retrieves all download entries.
func (s *DownloadService) GetAllDownloads() ([]models.Download, error) {
	return s.repo.GetAll()
}

// CreateDownload persists a new download entry. Status defaults to
// "working" when the input leaves it empty.
func (s *DownloadService) CreateDownload(input api.CreateDownloadInput) (*models.Download, error) {
	status := input.Status
	if status == "" {
		status = models.StatusWorking
	}
	if !validStatus(status) {
		return nil, fmt.Errorf("invalid status: %s", status)
	}

	download := &models.Download{
		Title:       input.Title,
		Description: input.Description,
		URL:         input.URL,
		Status:      status,
	}
	if err := s.repo.Create(download); err != nil {
		return nil, err
	}

	s.publish("download.created", "downloads", download.ID, download)
	return download, nil
}

// UpdateDownload merges the supplied fields onto an existing entry and
// returns the merged row.
func (s *DownloadService) UpdateDownload(id string, input api.UpdateDownloadInput) (*models.Download, error) {
	if input.Status != nil && !validStatus(*input.Status) {
		return nil, fmt.Errorf("invalid status: %s", *input.Status)
	}

	download, err := s.repo.Update(id, input.Fields())
	if err != nil {
		return nil, err
	}

	s.publish("download.updated", "downloads", download.ID, download)
	return download, nil
}

// DeleteDownload removes an entry. Deleting an absent ID succeeds.
func (s *DownloadService) DeleteDownload(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.publish("download.deleted", "downloads", id, nil)
	return nil
}

// publish sends a content event best-effort; broker trouble never fails
// the request that triggered it.
func (s *DownloadService) publish(kind, entity, id string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishContentEvent(rabbitmq.Event{
		Kind:     kind,
		Entity:   entity,
		EntityID: id,
		Payload:  payload,
	})
	if err != nil {
		log.Printf("Warning: failed to publish %s event for %s: %v", kind, id, err)
	}
}

// validStatus reports whether s is one of the allowed status values.
func validStatus(s string) bool {
	switch s {
	case models.StatusWorking, models.StatusDowngradeRequired, models.StatusDown:
		return true
	}
	return false
}

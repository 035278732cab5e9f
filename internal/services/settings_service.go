package services

import (
	"log"

	"quorumhub/internal/api"
	"quorumhub/internal/models"
	"quorumhub/internal/repositories"

	"quorumhub/pkg/rabbitmq"
)

// SettingsService handles the singleton site settings record.
type SettingsService struct {
	repo      repositories.SettingsRepository
	publisher EventPublisher
}

// NewSettingsService creates a new SettingsService. publisher may be
// nil when messaging is disabled.
func NewSettingsService(repo repositories.SettingsRepository, publisher EventPublisher) *SettingsService {
	return &SettingsService{
		repo:      repo,
		publisher: publisher,
	}
}

// GetSettings returns the settings record, creating it with defaults on
// first access.
func (s *SettingsService) GetSettings() (*models.Settings, error) {
	return s.repo.Get()
}

// UpdateSettings applies a partial update to the settings record,
// creating it first if it does not exist yet.
func (s *SettingsService) UpdateSettings(input api.UpdateSettingsInput) (*models.Settings, error) {
	settings, err := s.repo.Update(input.Fields())
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		pubErr := s.publisher.PublishContentEvent(rabbitmq.Event{
			Kind:     "settings.updated",
			Entity:   "settings",
			EntityID: settings.ID,
			Payload:  settings,
		})
		if pubErr != nil {
			log.Printf("Warning: failed to publish settings.updated event: %v", pubErr)
		}
	}
	return settings, nil
}

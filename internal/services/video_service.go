package services

import (
	"log"

	"quorumhub/internal/api"
	"quorumhub/internal/models"
	"quorumhub/internal/repositories"

	"quorumhub/pkg/rabbitmq"
)

// VideoService handles business logic for showcase videos.
type VideoService struct {
	repo      repositories.VideoRepository
	publisher EventPublisher
}

// NewVideoService creates a new VideoService. publisher may be nil when
// messaging is disabled.
func NewVideoService(repo repositories.VideoRepository, publisher EventPublisher) *VideoService {
	return &VideoService{
		repo:      repo,
		publisher: publisher,
	}
}

// GetAllVideos retrieves all videos.
func (s *VideoService) GetAllVideos() ([]models.Video, error) {
	return s.repo.GetAll()
}

// CreateVideo persists a new video.
func (s *VideoService) CreateVideo(input api.CreateVideoInput) (*models.Video, error) {
	video := &models.Video{
		Title:       input.Title,
		Description: input.Description,
		URL:         input.URL,
	}
	if err := s.repo.Create(video); err != nil {
		return nil, err
	}

	s.publish("video.created", video.ID, video)
	return video, nil
}

// UpdateVideo merges the supplied fields onto an existing video.
func (s *VideoService) UpdateVideo(id string, input api.UpdateVideoInput) (*models.Video, error) {
	video, err := s.repo.Update(id, input.Fields())
	if err != nil {
		return nil, err
	}

	s.publish("video.updated", video.ID, video)
	return video, nil
}

// DeleteVideo removes a video. Deleting an absent ID succeeds.
func (s *VideoService) DeleteVideo(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.publish("video.deleted", id, nil)
	return nil
}

func (s *VideoService) publish(kind, id string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishContentEvent(rabbitmq.Event{
		Kind:     kind,
		Entity:   "videos",
		EntityID: id,
		Payload:  payload,
	})
	if err != nil {
		log.Printf("Warning: failed to publish %s event for %s: %v", kind, id, err)
	}
}

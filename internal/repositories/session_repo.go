package repositories

import "quorumhub/internal/models"

// SessionRepository defines the interface for server-side session rows.
type SessionRepository interface {
	Create(session *models.Session) error
	GetByID(id string) (*models.Session, error)
	Delete(id string) error
	DeleteExpired() error
}

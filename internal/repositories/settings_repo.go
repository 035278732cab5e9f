package repositories

import "quorumhub/internal/models"

// SettingsRepository defines the interface for the singleton settings
// row. Get is read-through-create; Update is update-or-create.
type SettingsRepository interface {
	Get() (*models.Settings, error)
	Update(fields map[string]interface{}) (*models.Settings, error)
}

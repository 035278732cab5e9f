package models

// SettingsID is the fixed key of the singleton settings row.
const SettingsID = "global"

// Settings is the singleton site configuration record. Exactly one row
// exists, keyed by SettingsID; it is created lazily with defaults on
// first read and never deleted.
type Settings struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OldUIURL    string `json:"oldUiUrl" gorm:"column:old_ui_url;not null;default:''"`
	OldUIStatus string `json:"oldUiStatus" gorm:"column:old_ui_status;type:varchar(32);not null;default:working" validate:"omitempty,oneof=working downgrade_required down"`
	NewUIURL    string `json:"newUiUrl" gorm:"column:new_ui_url;not null;default:''"`
	NewUIStatus string `json:"newUiStatus" gorm:"column:new_ui_status;type:varchar(32);not null;default:working" validate:"omitempty,oneof=working downgrade_required down"`
}

// DefaultSettings returns the settings row as it should look before any
// admin has touched it.
func DefaultSettings() Settings {
	return Settings{
		ID:          SettingsID,
		OldUIURL:    "",
		OldUIStatus: StatusWorking,
		NewUIURL:    "",
		NewUIStatus: StatusWorking,
	}
}

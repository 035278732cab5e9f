package models

import "time"

// Status values shared by downloads and the settings UI variants.
const (
	StatusWorking           = "working"
	StatusDowngradeRequired = "downgrade_required"
	StatusDown              = "down"
)

// Download represents a downloadable client build listed on the site.
type Download struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title       string    `json:"title" gorm:"type:varchar(200);not null" validate:"required,min=1,max=200"`
	Description string    `json:"description" gorm:"not null" validate:"required,max=2000"`
	URL         string    `json:"url" gorm:"not null" validate:"required,url"`
	Status      string    `json:"status" gorm:"type:varchar(32);not null;default:working" validate:"omitempty,oneof=working downgrade_required down"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

package models

import "time"

// Video represents a showcase video embedded on the media page.
type Video struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title       string    `json:"title" gorm:"type:varchar(200);not null" validate:"required,min=1,max=200"`
	Description string    `json:"description" gorm:"not null" validate:"required,max=2000"`
	URL         string    `json:"url" gorm:"not null" validate:"required,url"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

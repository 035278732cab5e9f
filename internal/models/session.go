package models

import "time"

// Session is a server-side login session. The cookie handed to the
// client only references a row in this table; deleting the row revokes
// the login regardless of what the client still holds.
type Session struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);index;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`
}

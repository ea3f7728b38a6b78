package models

import "github.com/google/uuid"

// Comment is a public board entry, attributed either to a registered user
// (UserID set) or an anonymous display name.
type Comment struct {
	BaseModel
	UserID  *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Name    string     `json:"name,omitempty"`
	Content string     `json:"content"`
}

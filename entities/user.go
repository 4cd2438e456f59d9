package entities

import "github.com/google/uuid"

// User is owned by the account service; only the columns grocery and
// pantry rows reference are mirrored here.
type User struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name  string    `json:"name"`
	Email string    `gorm:"uniqueIndex" json:"email"`

	Timestamp
}

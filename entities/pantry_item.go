package entities

import (
	"github.com/google/uuid"
	"time"
)

type PantryItem struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID         uuid.UUID  `gorm:"type:uuid;index:idx_pantry_user_normalized,priority:1" json:"user_id"`
	Name           string     `json:"name"`
	NormalizedName string     `gorm:"index:idx_pantry_user_normalized,priority:2" json:"normalized_name"`
	Quantity       float64    `json:"quantity"`
	Unit           string     `json:"unit"`
	Category       string     `json:"category,omitempty"`
	ExpiryDate     *time.Time `gorm:"type:date" json:"expiry_date,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}

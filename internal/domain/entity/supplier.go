package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Supplier is a vendor stock items can be sourced from.
type Supplier struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	ContactPerson *string   `gorm:"size:255" json:"contact_person,omitempty"`
	Phone         *string   `gorm:"size:50" json:"phone,omitempty"`
	Email         *string   `gorm:"size:255" json:"email,omitempty"`
	Address       *string   `gorm:"type:text" json:"address,omitempty"`
	Notes         *string   `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new supplier
func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Supplier model
func (Supplier) TableName() string {
	return "suppliers"
}

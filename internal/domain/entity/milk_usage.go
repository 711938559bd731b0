package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MilkUsage is the per-date milk tally, one row per date. Remaining carries
// over: previous day's remaining + purchased - used.
type MilkUsage struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Date      string    `gorm:"size:10;uniqueIndex;not null" json:"date"`
	Purchased float64   `gorm:"default:0" json:"purchased"`
	Used      float64   `gorm:"default:0" json:"used"`
	Remaining float64   `gorm:"default:0" json:"remaining"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new milk usage row
func (m *MilkUsage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the MilkUsage model
func (MilkUsage) TableName() string {
	return "milk_usage"
}

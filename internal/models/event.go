package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CourseName string    `gorm:"not null" json:"courseName"`
	Venue      string    `gorm:"not null" json:"venue"`
	Date       time.Time `gorm:"not null" json:"date"`
	Price      float64   `gorm:"not null" json:"price"`
	EmailText  string    `gorm:"not null" json:"emailText"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// BeforeCreate assigns the store-side id. Ids are opaque strings to callers.
func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

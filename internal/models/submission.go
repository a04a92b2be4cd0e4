package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubmissionType string

const (
	TypePerson  SubmissionType = "person"
	TypeCompany SubmissionType = "company"
)

type Submission struct {
	ID      string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	EventID string         `gorm:"type:varchar(36);not null;index" json:"eventId"`
	Type    SubmissionType `gorm:"type:varchar(20);not null" json:"type"`
	Name    string         `gorm:"not null" json:"name"`
	Email   string         `gorm:"not null" json:"email"`

	// FileURL and FileName are set together or not at all.
	FileURL  *string `json:"fileUrl"`
	FileName *string `json:"fileName"`

	Paid      bool      `gorm:"not null;default:false" json:"paid"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// HasFile reports whether an attachment was stored for this submission.
func (s *Submission) HasFile() bool {
	return s.FileURL != nil && *s.FileURL != ""
}

package dto

import (
	"time"

	"github.com/KyryloKozlovskyi/transaction-website/internal/models"
)

type EventResponse struct {
	ID         string    `json:"id"`
	CourseName string    `json:"courseName"`
	Venue      string    `json:"venue"`
	Date       time.Time `json:"date"`
	Price      float64   `json:"price"`
	EmailText  string    `json:"emailText"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// SubmissionResponse is the admin-facing projection.
type SubmissionResponse struct {
	ID        string                `json:"id"`
	EventID   string                `json:"eventId"`
	Type      models.SubmissionType `json:"type"`
	Name      string                `json:"name"`
	Email     string                `json:"email"`
	FileURL   *string               `json:"fileUrl"`
	FileName  *string               `json:"fileName"`
	Paid      bool                  `json:"paid"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

// CreatedSubmissionResponse is the public projection returned to a submitter.
type CreatedSubmissionResponse struct {
	Message    string               `json:"message"`
	Submission SubmissionProjection `json:"submission"`
}

type SubmissionProjection struct {
	ID       string                `json:"id"`
	EventID  string                `json:"eventId"`
	Type     models.SubmissionType `json:"type"`
	Name     string                `json:"name"`
	Email    string                `json:"email"`
	Paid     bool                  `json:"paid"`
	FileURL  *string               `json:"fileUrl"`
	FileName *string               `json:"fileName"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

func ToEventResponse(e *models.Event) EventResponse {
	return EventResponse{
		ID:         e.ID,
		CourseName: e.CourseName,
		Venue:      e.Venue,
		Date:       e.Date,
		Price:      e.Price,
		EmailText:  e.EmailText,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func ToSubmissionResponse(s *models.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:        s.ID,
		EventID:   s.EventID,
		Type:      s.Type,
		Name:      s.Name,
		Email:     s.Email,
		FileURL:   s.FileURL,
		FileName:  s.FileName,
		Paid:      s.Paid,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func ToCreatedSubmissionResponse(s *models.Submission) CreatedSubmissionResponse {
	return CreatedSubmissionResponse{
		Message: "Submission successful",
		Submission: SubmissionProjection{
			ID:       s.ID,
			EventID:  s.EventID,
			Type:     s.Type,
			Name:     s.Name,
			Email:    s.Email,
			Paid:     s.Paid,
			FileURL:  s.FileURL,
			FileName: s.FileName,
		},
	}
}

package dto

import "strings"

// EventRequest is the body for both create (POST) and full replace (PUT).
// Price is a pointer so that an absent field fails required validation
// instead of passing as a zero price.
type EventRequest struct {
	CourseName string   `json:"courseName" validate:"required,min=3,max=200"`
	Venue      string   `json:"venue" validate:"required,min=3,max=200"`
	Date       string   `json:"date" validate:"required,isodate"`
	Price      *float64 `json:"price" validate:"required,gte=0"`
	EmailText  string   `json:"emailText" validate:"required,min=10"`
}

// Normalize trims surrounding whitespace before validation runs.
func (r *EventRequest) Normalize() {
	r.CourseName = strings.TrimSpace(r.CourseName)
	r.Venue = strings.TrimSpace(r.Venue)
	r.Date = strings.TrimSpace(r.Date)
	r.EmailText = strings.TrimSpace(r.EmailText)
}

// CreateSubmissionRequest carries the multipart form fields of a public
// submission. The optional file part is handled separately by the handler.
type CreateSubmissionRequest struct {
	EventID string `json:"eventId" form:"eventId" validate:"required"`
	Type    string `json:"type" form:"type" validate:"required,oneof=person company"`
	Name    string `json:"name" form:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" form:"email" validate:"required,email"`
}

func (r *CreateSubmissionRequest) Normalize() {
	r.EventID = strings.TrimSpace(r.EventID)
	r.Type = strings.TrimSpace(r.Type)
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// UpdateSubmissionRequest toggles the admin-managed payment flag.
// Paid is a pointer so that an absent field fails required validation
// instead of silently defaulting to false.
type UpdateSubmissionRequest struct {
	Paid *bool `json:"paid" validate:"required"`
}

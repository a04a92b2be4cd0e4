package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/KyryloKozlovskyi/transaction-website/internal/models"
	"github.com/KyryloKozlovskyi/transaction-website/internal/repository"
	"github.com/KyryloKozlovskyi/transaction-website/internal/storage"
	"github.com/KyryloKozlovskyi/transaction-website/pkg/rabbitmq"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrFileNotFound       = errors.New("file not found")
	ErrStorage            = errors.New("file storage failed")
)

type EventInput struct {
	CourseName string
	Venue      string
	Date       time.Time
	Price      float64
	EmailText  string
}

type EventService interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	CreateEvent(ctx context.Context, in EventInput) (*models.Event, error)
	UpdateEvent(ctx context.Context, id string, in EventInput) error
	DeleteEvent(ctx context.Context, id string) error
}

type eventService struct {
	eventRepo      repository.EventRepository
	submissionRepo repository.SubmissionRepository
	store          storage.ObjectStore
	publisher      *rabbitmq.Publisher
}

func NewEventService(
	eventRepo repository.EventRepository,
	submissionRepo repository.SubmissionRepository,
	store storage.ObjectStore,
	publisher *rabbitmq.Publisher,
) EventService {
	return &eventService{
		eventRepo:      eventRepo,
		submissionRepo: submissionRepo,
		store:          store,
		publisher:      publisher,
	}
}

func (s *eventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.eventRepo.FindAll(ctx)
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *eventService) CreateEvent(ctx context.Context, in EventInput) (*models.Event, error) {
	event := &models.Event{
		CourseName: in.CourseName,
		Venue:      in.Venue,
		Date:       in.Date,
		Price:      in.Price,
		EmailText:  in.EmailText,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	if err := s.publisher.Publish("event.created", event); err != nil {
		log.Printf("[events] publish event.created: %v", err)
	}

	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id string, in EventInput) error {
	event := &models.Event{
		ID:         id,
		CourseName: in.CourseName,
		Venue:      in.Venue,
		Date:       in.Date,
		Price:      in.Price,
		EmailText:  in.EmailText,
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

// DeleteEvent removes the event, then cascades over its submissions:
// attachments are deleted best-effort, the records in one batch. A
// submission created for this event while the cascade runs can survive
// as an orphan; that race is accepted.
func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}

	submissions, err := s.submissionRepo.FindByEventID(ctx, id)
	if err != nil {
		return fmt.Errorf("list submissions for cascade: %w", err)
	}

	for _, sub := range submissions {
		if !sub.HasFile() {
			continue
		}
		if err := s.store.Delete(ctx, *sub.FileURL); err != nil {
			log.Printf("cascade: delete attachment %s: %v", *sub.FileURL, err)
		}
	}

	if err := s.submissionRepo.DeleteByEventID(ctx, id); err != nil {
		return fmt.Errorf("cascade delete submissions: %w", err)
	}

	if err := s.publisher.Publish("event.deleted", map[string]string{"id": id}); err != nil {
		log.Printf("[events] publish event.deleted: %v", err)
	}

	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/KyryloKozlovskyi/transaction-website/internal/mailer"
	"github.com/KyryloKozlovskyi/transaction-website/internal/models"
	"github.com/KyryloKozlovskyi/transaction-website/internal/repository"
	"github.com/KyryloKozlovskyi/transaction-website/internal/storage"
	"github.com/KyryloKozlovskyi/transaction-website/pkg/rabbitmq"
	"gorm.io/gorm"
)

// FileUpload is an attachment read from the multipart request. Size and
// content type have already been checked at the HTTP boundary.
type FileUpload struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type CreateSubmissionInput struct {
	EventID string
	Type    models.SubmissionType
	Name    string
	Email   string
	File    *FileUpload
}

// Download is a streamed attachment plus its response metadata.
type Download struct {
	Reader      io.ReadCloser
	ContentType string
	Size        int64
	FileName    string
}

type SubmissionService interface {
	CreateSubmission(ctx context.Context, in CreateSubmissionInput) (*models.Submission, error)
	ListSubmissions(ctx context.Context) ([]models.Submission, error)
	UpdatePaid(ctx context.Context, id string, paid bool) (*models.Submission, error)
	DeleteSubmission(ctx context.Context, id string) error
	DownloadFile(ctx context.Context, id string) (*Download, error)
}

type submissionService struct {
	submissionRepo repository.SubmissionRepository
	eventRepo      repository.EventRepository
	store          storage.ObjectStore
	sender         mailer.Sender
	publisher      *rabbitmq.Publisher
}

func NewSubmissionService(
	submissionRepo repository.SubmissionRepository,
	eventRepo repository.EventRepository,
	store storage.ObjectStore,
	sender mailer.Sender,
	publisher *rabbitmq.Publisher,
) SubmissionService {
	return &submissionService{
		submissionRepo: submissionRepo,
		eventRepo:      eventRepo,
		store:          store,
		sender:         sender,
		publisher:      publisher,
	}
}

// CreateSubmission runs the ingestion pipeline: referenced event must
// exist, the attachment (if any) is uploaded first, then the record is
// written. A record failure after a successful upload compensates by
// deleting the uploaded object; the confirmation email is fired from a
// detached goroutine and never affects the outcome.
func (s *submissionService) CreateSubmission(ctx context.Context, in CreateSubmissionInput) (*models.Submission, error) {
	if _, err := s.eventRepo.FindByID(ctx, in.EventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("look up event: %w", err)
	}

	var fileURL, fileName *string
	if in.File != nil {
		key := storage.ObjectKey(in.File.Name)
		locator, err := s.store.Upload(ctx, key, in.File.Reader, in.File.Size, in.File.ContentType)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		fileURL = &locator
		name := in.File.Name
		fileName = &name
	}

	submission := &models.Submission{
		EventID:  in.EventID,
		Type:     in.Type,
		Name:     in.Name,
		Email:    in.Email,
		FileURL:  fileURL,
		FileName: fileName,
		Paid:     false,
	}

	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		if fileURL != nil {
			if delErr := s.store.Delete(ctx, *fileURL); delErr != nil {
				log.Printf("compensation: delete attachment %s: %v", *fileURL, delErr)
			}
		}
		return nil, fmt.Errorf("persist submission: %w", err)
	}

	go s.sendConfirmation(submission)

	if err := s.publisher.Publish("submission.created", submission); err != nil {
		log.Printf("[events] publish submission.created: %v", err)
	}

	return submission, nil
}

// sendConfirmation runs detached from the request that created the
// submission, with its own deadline.
func (s *submissionService) sendConfirmation(submission *models.Submission) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.sender.SendConfirmation(ctx, submission.Email, submission.Name, string(submission.Type)); err != nil {
		log.Printf("[mailer] confirmation for submission %s: %v", submission.ID, err)
	}
}

func (s *submissionService) ListSubmissions(ctx context.Context) ([]models.Submission, error) {
	return s.submissionRepo.FindAll(ctx)
}

// UpdatePaid writes only the paid flag and returns the refreshed
// record. Applying the same value twice is observably idempotent.
func (s *submissionService) UpdatePaid(ctx context.Context, id string, paid bool) (*models.Submission, error) {
	if err := s.submissionRepo.UpdatePaid(ctx, id, paid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("update paid: %w", err)
	}

	submission, err := s.submissionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload submission: %w", err)
	}
	return submission, nil
}

// DeleteSubmission removes the attachment before the record, so a
// failed object delete leaves the record (and its locator) intact for a
// retry.
func (s *submissionService) DeleteSubmission(ctx context.Context, id string) error {
	submission, err := s.submissionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubmissionNotFound
		}
		return fmt.Errorf("look up submission: %w", err)
	}

	if submission.HasFile() {
		if err := s.store.Delete(ctx, *submission.FileURL); err != nil {
			return fmt.Errorf("%w: %v", ErrStorage, err)
		}
	}

	if err := s.submissionRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubmissionNotFound
		}
		return fmt.Errorf("delete submission: %w", err)
	}
	return nil
}

// DownloadFile streams the attachment. Storage failures surface as
// ErrFileNotFound so provider detail never reaches the caller.
func (s *submissionService) DownloadFile(ctx context.Context, id string) (*Download, error) {
	submission, err := s.submissionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("look up submission: %w", err)
	}

	if !submission.HasFile() {
		return nil, ErrFileNotFound
	}

	reader, info, err := s.store.Download(ctx, *submission.FileURL)
	if err != nil {
		log.Printf("download attachment %s: %v", *submission.FileURL, err)
		return nil, ErrFileNotFound
	}

	name := "attachment.pdf"
	if submission.FileName != nil {
		name = *submission.FileName
	}

	return &Download{
		Reader:      reader,
		ContentType: info.ContentType,
		Size:        info.Size,
		FileName:    name,
	}, nil
}

package service

import (
	"context"
	"io"

	"github.com/KyryloKozlovskyi/transaction-website/internal/models"
	"github.com/KyryloKozlovskyi/transaction-website/internal/storage"
)

// Function-field mocks shared by the service tests. Unset fields are
// no-ops returning zero values.

type mockEventRepo struct {
	createFn   func(ctx context.Context, event *models.Event) error
	findByIDFn func(ctx context.Context, id string) (*models.Event, error)
	findAllFn  func(ctx context.Context) ([]models.Event, error)
	updateFn   func(ctx context.Context, event *models.Event) error
	deleteFn   func(ctx context.Context, id string) error
}

func (m *mockEventRepo) Create(ctx context.Context, event *models.Event) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, event)
}

func (m *mockEventRepo) FindByID(ctx context.Context, id string) (*models.Event, error) {
	if m.findByIDFn == nil {
		return &models.Event{ID: id}, nil
	}
	return m.findByIDFn(ctx, id)
}

func (m *mockEventRepo) FindAll(ctx context.Context) ([]models.Event, error) {
	if m.findAllFn == nil {
		return nil, nil
	}
	return m.findAllFn(ctx)
}

func (m *mockEventRepo) Update(ctx context.Context, event *models.Event) error {
	if m.updateFn == nil {
		return nil
	}
	return m.updateFn(ctx, event)
}

func (m *mockEventRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, id)
}

type mockSubmissionRepo struct {
	createFn          func(ctx context.Context, submission *models.Submission) error
	findByIDFn        func(ctx context.Context, id string) (*models.Submission, error)
	findAllFn         func(ctx context.Context) ([]models.Submission, error)
	findByEventIDFn   func(ctx context.Context, eventID string) ([]models.Submission, error)
	updatePaidFn      func(ctx context.Context, id string, paid bool) error
	deleteFn          func(ctx context.Context, id string) error
	deleteByEventIDFn func(ctx context.Context, eventID string) error
}

func (m *mockSubmissionRepo) Create(ctx context.Context, submission *models.Submission) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, submission)
}

func (m *mockSubmissionRepo) FindByID(ctx context.Context, id string) (*models.Submission, error) {
	if m.findByIDFn == nil {
		return &models.Submission{ID: id}, nil
	}
	return m.findByIDFn(ctx, id)
}

func (m *mockSubmissionRepo) FindAll(ctx context.Context) ([]models.Submission, error) {
	if m.findAllFn == nil {
		return nil, nil
	}
	return m.findAllFn(ctx)
}

func (m *mockSubmissionRepo) FindByEventID(ctx context.Context, eventID string) ([]models.Submission, error) {
	if m.findByEventIDFn == nil {
		return nil, nil
	}
	return m.findByEventIDFn(ctx, eventID)
}

func (m *mockSubmissionRepo) UpdatePaid(ctx context.Context, id string, paid bool) error {
	if m.updatePaidFn == nil {
		return nil
	}
	return m.updatePaidFn(ctx, id, paid)
}

func (m *mockSubmissionRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, id)
}

func (m *mockSubmissionRepo) DeleteByEventID(ctx context.Context, eventID string) error {
	if m.deleteByEventIDFn == nil {
		return nil
	}
	return m.deleteByEventIDFn(ctx, eventID)
}

type mockObjectStore struct {
	uploadFn   func(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	downloadFn func(ctx context.Context, locator string) (io.ReadCloser, storage.ObjectInfo, error)
	deleteFn   func(ctx context.Context, locator string) error
}

func (m *mockObjectStore) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if m.uploadFn == nil {
		return key, nil
	}
	return m.uploadFn(ctx, key, r, size, contentType)
}

func (m *mockObjectStore) Download(ctx context.Context, locator string) (io.ReadCloser, storage.ObjectInfo, error) {
	if m.downloadFn == nil {
		return io.NopCloser(nil), storage.ObjectInfo{}, nil
	}
	return m.downloadFn(ctx, locator)
}

func (m *mockObjectStore) Delete(ctx context.Context, locator string) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, locator)
}

type mockSender struct {
	sendFn func(ctx context.Context, to, name, submissionType string) error
}

func (m *mockSender) SendConfirmation(ctx context.Context, to, name, submissionType string) error {
	if m.sendFn == nil {
		return nil
	}
	return m.sendFn(ctx, to, name, submissionType)
}

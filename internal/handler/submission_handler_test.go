package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/KyryloKozlovskyi/transaction-website/internal/dto"
	"github.com/KyryloKozlovskyi/transaction-website/internal/models"
	"github.com/KyryloKozlovskyi/transaction-website/internal/service"
	"github.com/KyryloKozlovskyi/transaction-website/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock SubmissionService ---

type mockSubmissionService struct {
	createFn   func(ctx context.Context, in service.CreateSubmissionInput) (*models.Submission, error)
	listFn     func(ctx context.Context) ([]models.Submission, error)
	updateFn   func(ctx context.Context, id string, paid bool) (*models.Submission, error)
	deleteFn   func(ctx context.Context, id string) error
	downloadFn func(ctx context.Context, id string) (*service.Download, error)
}

func (m *mockSubmissionService) CreateSubmission(ctx context.Context, in service.CreateSubmissionInput) (*models.Submission, error) {
	return m.createFn(ctx, in)
}
func (m *mockSubmissionService) ListSubmissions(ctx context.Context) ([]models.Submission, error) {
	return m.listFn(ctx)
}
func (m *mockSubmissionService) UpdatePaid(ctx context.Context, id string, paid bool) (*models.Submission, error) {
	return m.updateFn(ctx, id, paid)
}
func (m *mockSubmissionService) DeleteSubmission(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}
func (m *mockSubmissionService) DownloadFile(ctx context.Context, id string) (*service.Download, error) {
	return m.downloadFn(ctx, id)
}

func multipartBody(t *testing.T, fields map[string]string, fileName, fileContentType, fileData string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
		header.Set("Content-Type", fileContentType)
		part, err := w.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte(fileData))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func submissionFields() map[string]string {
	return map[string]string{
		"eventId": "ev-1",
		"type":    "person",
		"name":    "A B",
		"email":   "a@b.com",
	}
}

func newMultipartContext(t *testing.T, fields map[string]string, fileName, fileContentType, fileData string) (echo.Context, *httptest.ResponseRecorder) {
	body, contentType := multipartBody(t, fields, fileName, fileContentType, fileData)
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/submissions", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// --- Tests ---

func TestCreateSubmission_Handler_NoFile(t *testing.T) {
	svc := &mockSubmissionService{
		createFn: func(ctx context.Context, in service.CreateSubmissionInput) (*models.Submission, error) {
			assert.Nil(t, in.File)
			assert.Equal(t, models.TypePerson, in.Type)
			return &models.Submission{
				ID:      "sub-1",
				EventID: in.EventID,
				Type:    in.Type,
				Name:    in.Name,
				Email:   in.Email,
			}, nil
		},
	}

	c, rec := newMultipartContext(t, submissionFields(), "", "", "")

	h := NewSubmissionHandler(svc, validation.New())
	require.NoError(t, h.CreateSubmission(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.CreatedSubmissionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "sub-1", resp.Submission.ID)
	assert.False(t, resp.Submission.Paid)
	assert.Nil(t, resp.Submission.FileURL)
}

func TestCreateSubmission_Handler_WithFile(t *testing.T) {
	svc := &mockSubmissionService{
		createFn: func(ctx context.Context, in service.CreateSubmissionInput) (*models.Submission, error) {
			require.NotNil(t, in.File)
			assert.Equal(t, "cv.pdf", in.File.Name)
			data, err := io.ReadAll(in.File.Reader)
			require.NoError(t, err)
			assert.Equal(t, "%PDF-1.4", string(data))
			return &models.Submission{ID: "sub-1", EventID: in.EventID, Type: in.Type}, nil
		},
	}

	c, rec := newMultipartContext(t, submissionFields(), "cv.pdf", "application/pdf", "%PDF-1.4")

	h := NewSubmissionHandler(svc, validation.New())
	require.NoError(t, h.CreateSubmission(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateSubmission_Handler_BothViolationsListed(t *testing.T) {
	fields := submissionFields()
	fields["name"] = ""
	fields["email"] = "nope"
	c, _ := newMultipartContext(t, fields, "", "", "")

	h := NewSubmissionHandler(&mockSubmissionService{}, validation.New())
	err := h.CreateSubmission(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)

	resp, ok := he.Message.(dto.ErrorResponse)
	require.True(t, ok)
	violations, ok := resp.Errors.([]validation.Violation)
	require.True(t, ok)
	require.Len(t, violations, 2)
}

func TestCreateSubmission_Handler_RejectsNonPDF(t *testing.T) {
	c, _ := newMultipartContext(t, submissionFields(), "notes.txt", "text/plain", "hello")

	h := NewSubmissionHandler(&mockSubmissionService{}, validation.New())
	err := h.CreateSubmission(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Equal(t, "Only PDF files are allowed", he.Message)
}

func TestCreateSubmission_Handler_EventMissing(t *testing.T) {
	svc := &mockSubmissionService{
		createFn: func(ctx context.Context, in service.CreateSubmissionInput) (*models.Submission, error) {
			return nil, service.ErrEventNotFound
		},
	}

	c, _ := newMultipartContext(t, submissionFields(), "", "", "")

	h := NewSubmissionHandler(svc, validation.New())
	err := h.CreateSubmission(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestCheckAttachment_SizeLimit(t *testing.T) {
	header := textproto.MIMEHeader{}
	header.Set("Content-Type", "application/pdf")
	fh := &multipart.FileHeader{
		Filename: "big.pdf",
		Size:     maxFileSize + 1,
		Header:   header,
	}

	err := checkAttachment(fh)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Equal(t, "File size exceeds maximum limit", he.Message)
}

func TestCheckAttachment_AcceptsPDFAtLimit(t *testing.T) {
	header := textproto.MIMEHeader{}
	header.Set("Content-Type", "application/pdf")
	fh := &multipart.FileHeader{
		Filename: "cv.pdf",
		Size:     maxFileSize,
		Header:   header,
	}

	assert.NoError(t, checkAttachment(fh))
}

func TestUpdateSubmission_Handler_Success(t *testing.T) {
	svc := &mockSubmissionService{
		updateFn: func(ctx context.Context, id string, paid bool) (*models.Submission, error) {
			assert.Equal(t, "sub-1", id)
			assert.True(t, paid)
			return &models.Submission{ID: id, Paid: paid}, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/api/submissions/sub-1", strings.NewReader(`{"paid":true}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("sub-1")

	h := NewSubmissionHandler(svc, validation.New())
	require.NoError(t, h.UpdateSubmission(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.SubmissionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Paid)
}

func TestUpdateSubmission_Handler_MissingPaid(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/api/submissions/sub-1", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("sub-1")

	h := NewSubmissionHandler(&mockSubmissionService{}, validation.New())
	err := h.UpdateSubmission(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestDownloadFile_Handler_StreamsAttachment(t *testing.T) {
	svc := &mockSubmissionService{
		downloadFn: func(ctx context.Context, id string) (*service.Download, error) {
			return &service.Download{
				Reader:      io.NopCloser(strings.NewReader("%PDF-1.4")),
				ContentType: "application/pdf",
				Size:        8,
				FileName:    "cv.pdf",
			}, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/submissions/sub-1/file", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("sub-1")

	h := NewSubmissionHandler(svc, validation.New())
	require.NoError(t, h.DownloadFile(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "cv.pdf")
	assert.Equal(t, "%PDF-1.4", rec.Body.String())
}

func TestDownloadFile_Handler_NoAttachment(t *testing.T) {
	svc := &mockSubmissionService{
		downloadFn: func(ctx context.Context, id string) (*service.Download, error) {
			return nil, service.ErrFileNotFound
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/submissions/sub-1/file", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("sub-1")

	h := NewSubmissionHandler(svc, validation.New())
	err := h.DownloadFile(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestListSubmissions_Handler_Success(t *testing.T) {
	svc := &mockSubmissionService{
		listFn: func(ctx context.Context) ([]models.Submission, error) {
			return []models.Submission{
				{ID: "sub-2", Type: models.TypeCompany},
				{ID: "sub-1", Type: models.TypePerson},
			}, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/submissions", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewSubmissionHandler(svc, validation.New())
	require.NoError(t, h.ListSubmissions(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []dto.SubmissionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

func TestDeleteSubmission_Handler_NotFound(t *testing.T) {
	svc := &mockSubmissionService{
		deleteFn: func(ctx context.Context, id string) error {
			return service.ErrSubmissionNotFound
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/submissions/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	h := NewSubmissionHandler(svc, validation.New())
	err := h.DeleteSubmission(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestDeleteSubmission_Handler_NoContent(t *testing.T) {
	svc := &mockSubmissionService{
		deleteFn: func(ctx context.Context, id string) error { return nil },
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/submissions/sub-1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("sub-1")

	h := NewSubmissionHandler(svc, validation.New())
	require.NoError(t, h.DeleteSubmission(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/KyryloKozlovskyi/transaction-website/internal/dto"
	"github.com/KyryloKozlovskyi/transaction-website/internal/models"
	"github.com/KyryloKozlovskyi/transaction-website/internal/service"
	"github.com/KyryloKozlovskyi/transaction-website/internal/validation"
	"github.com/labstack/echo/v4"
)

const (
	maxFileSize    = 5 * 1024 * 1024
	pdfContentType = "application/pdf"
)

type SubmissionHandler struct {
	svc      service.SubmissionService
	validate *validation.Validator
}

func NewSubmissionHandler(svc service.SubmissionService, validate *validation.Validator) *SubmissionHandler {
	return &SubmissionHandler{svc: svc, validate: validate}
}

// RegisterRoutes mounts the submission routes. Create is public behind
// its own rate limit; everything else is admin-only.
func (h *SubmissionHandler) RegisterRoutes(g *echo.Group, create []echo.MiddlewareFunc, admin []echo.MiddlewareFunc) {
	g.POST("", h.CreateSubmission, create...)
	g.GET("", h.ListSubmissions, admin...)
	g.PATCH("/:id", h.UpdateSubmission, admin...)
	g.GET("/:id/file", h.DownloadFile, admin...)
	g.DELETE("/:id", h.DeleteSubmission, admin...)
}

func (h *SubmissionHandler) CreateSubmission(c echo.Context) error {
	var req dto.CreateSubmissionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	req.Normalize()

	if violations := h.validate.Check(&req); violations != nil {
		return validationError(violations)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil && !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid file upload")
	}

	var upload *service.FileUpload
	if fileHeader != nil {
		if err := checkAttachment(fileHeader); err != nil {
			return err
		}

		src, err := fileHeader.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "File upload failed").SetInternal(err)
		}
		defer src.Close()

		upload = &service.FileUpload{
			Name:        fileHeader.Filename,
			ContentType: pdfContentType,
			Size:        fileHeader.Size,
			Reader:      src,
		}
	}

	submission, err := h.svc.CreateSubmission(c.Request().Context(), service.CreateSubmissionInput{
		EventID: req.EventID,
		Type:    models.SubmissionType(req.Type),
		Name:    req.Name,
		Email:   req.Email,
		File:    upload,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Event not found")
		case errors.Is(err, service.ErrStorage):
			return echo.NewHTTPError(http.StatusInternalServerError, "File upload failed").SetInternal(err)
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Error processing submission").SetInternal(err)
		}
	}

	return c.JSON(http.StatusCreated, dto.ToCreatedSubmissionResponse(submission))
}

func (h *SubmissionHandler) ListSubmissions(c echo.Context) error {
	submissions, err := h.svc.ListSubmissions(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch submissions").SetInternal(err)
	}

	resp := make([]dto.SubmissionResponse, len(submissions))
	for i := range submissions {
		resp[i] = dto.ToSubmissionResponse(&submissions[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *SubmissionHandler) UpdateSubmission(c echo.Context) error {
	var req dto.UpdateSubmissionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if violations := h.validate.Check(&req); violations != nil {
		return validationError(violations)
	}

	submission, err := h.svc.UpdatePaid(c.Request().Context(), c.Param("id"), *req.Paid)
	if err != nil {
		if errors.Is(err, service.ErrSubmissionNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Submission not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update submission").SetInternal(err)
	}
	return c.JSON(http.StatusOK, dto.ToSubmissionResponse(submission))
}

func (h *SubmissionHandler) DownloadFile(c echo.Context) error {
	download, err := h.svc.DownloadFile(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrSubmissionNotFound) || errors.Is(err, service.ErrFileNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "File not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Error downloading file").SetInternal(err)
	}
	defer download.Reader.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, download.FileName))
	return c.Stream(http.StatusOK, download.ContentType, download.Reader)
}

func (h *SubmissionHandler) DeleteSubmission(c echo.Context) error {
	if err := h.svc.DeleteSubmission(c.Request().Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, service.ErrSubmissionNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Submission not found")
		case errors.Is(err, service.ErrStorage):
			return echo.NewHTTPError(http.StatusInternalServerError, "File deletion failed").SetInternal(err)
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete submission").SetInternal(err)
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// checkAttachment enforces the upload constraints before any gateway
// call: PDF only, at most 5 MB.
func checkAttachment(fh *multipart.FileHeader) error {
	if fh.Size > maxFileSize {
		return echo.NewHTTPError(http.StatusBadRequest, "File size exceeds maximum limit")
	}

	contentType := fh.Header.Get("Content-Type")
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if contentType != pdfContentType || ext != ".pdf" {
		return echo.NewHTTPError(http.StatusBadRequest, "Only PDF files are allowed")
	}
	return nil
}

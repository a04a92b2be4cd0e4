// Package handler exposes the HTTP surface. Handlers bind and validate
// input, delegate to the service layer, and map sentinel errors to
// status codes; they never talk to a gateway directly.
package handler

import (
	"net/http"

	"github.com/KyryloKozlovskyi/transaction-website/internal/dto"
	"github.com/KyryloKozlovskyi/transaction-website/internal/validation"
	"github.com/labstack/echo/v4"
)

// validationError wraps the full violation list into the API's error
// body so the caller sees every problem in one response.
func validationError(violations []validation.Violation) error {
	return echo.NewHTTPError(http.StatusBadRequest, dto.ErrorResponse{
		Status:  "fail",
		Message: "Validation failed",
		Errors:  violations,
	})
}

package middleware

import (
	"log"
	"net/http"

	"github.com/KyryloKozlovskyi/transaction-website/internal/dto"
	"github.com/labstack/echo/v4"
)

// NewErrorHandler builds the global echo error handler. Every error
// leaves the service as {status, message, errors?}; internal error
// detail is attached only when includeStack is set (non-production).
func NewErrorHandler(includeStack bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		body := dto.ErrorResponse{Message: "Internal server error"}

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			switch m := he.Message.(type) {
			case dto.ErrorResponse:
				body = m
			case string:
				body.Message = m
			default:
				body.Message = http.StatusText(code)
			}
			if includeStack && he.Internal != nil {
				body.Stack = he.Internal.Error()
			}
		} else if includeStack {
			body.Stack = err.Error()
		}

		if body.Status == "" {
			if code >= 400 && code < 500 {
				body.Status = "fail"
			} else {
				body.Status = "error"
			}
		}

		if code >= 500 {
			log.Printf("request failed: %s %s -> %d: %v", c.Request().Method, c.Request().URL.Path, code, err)
		}

		_ = c.JSON(code, body)
	}
}

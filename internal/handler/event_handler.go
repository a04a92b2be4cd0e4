package handler

import (
	"errors"
	"net/http"

	"github.com/KyryloKozlovskyi/transaction-website/internal/dto"
	"github.com/KyryloKozlovskyi/transaction-website/internal/service"
	"github.com/KyryloKozlovskyi/transaction-website/internal/validation"
	"github.com/labstack/echo/v4"
)

type EventHandler struct {
	svc      service.EventService
	validate *validation.Validator
}

func NewEventHandler(svc service.EventService, validate *validation.Validator) *EventHandler {
	return &EventHandler{svc: svc, validate: validate}
}

// RegisterRoutes mounts the event routes; reads are public, mutations
// run behind the supplied admin middleware chain.
func (h *EventHandler) RegisterRoutes(g *echo.Group, admin ...echo.MiddlewareFunc) {
	g.GET("", h.ListEvents)
	g.GET("/:id", h.GetEvent)
	g.POST("", h.CreateEvent, admin...)
	g.PUT("/:id", h.UpdateEvent, admin...)
	g.DELETE("/:id", h.DeleteEvent, admin...)
}

func (h *EventHandler) ListEvents(c echo.Context) error {
	events, err := h.svc.ListEvents(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch events").SetInternal(err)
	}

	resp := make([]dto.EventResponse, len(events))
	for i := range events {
		resp[i] = dto.ToEventResponse(&events[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *EventHandler) GetEvent(c echo.Context) error {
	event, err := h.svc.GetEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Event not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch event").SetInternal(err)
	}
	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	in, err := h.bindEventInput(c)
	if err != nil {
		return err
	}

	event, err := h.svc.CreateEvent(c.Request().Context(), *in)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create event").SetInternal(err)
	}
	return c.JSON(http.StatusCreated, dto.ToEventResponse(event))
}

func (h *EventHandler) UpdateEvent(c echo.Context) error {
	in, err := h.bindEventInput(c)
	if err != nil {
		return err
	}

	if err := h.svc.UpdateEvent(c.Request().Context(), c.Param("id"), *in); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Event not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update event").SetInternal(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *EventHandler) DeleteEvent(c echo.Context) error {
	if err := h.svc.DeleteEvent(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Event not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete event").SetInternal(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *EventHandler) bindEventInput(c echo.Context) (*service.EventInput, error) {
	var req dto.EventRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	req.Normalize()

	if violations := h.validate.Check(&req); violations != nil {
		return nil, validationError(violations)
	}

	date, err := validation.ParseDate(req.Date)
	if err != nil {
		return nil, validationError([]validation.Violation{{Field: "date", Message: "must be an ISO-8601 date"}})
	}

	return &service.EventInput{
		CourseName: req.CourseName,
		Venue:      req.Venue,
		Date:       date,
		Price:      *req.Price,
		EmailText:  req.EmailText,
	}, nil
}

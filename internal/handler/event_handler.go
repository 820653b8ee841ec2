package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/bgaal/passhub/internal/dto"
	"github.com/bgaal/passhub/internal/middleware"
	"github.com/bgaal/passhub/internal/service"
	"github.com/labstack/echo/v4"
)

type EventHandler struct {
	svc service.EventService
}

func NewEventHandler(svc service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

func (h *EventHandler) RegisterRoutes(e *echo.Echo, auth, admin echo.MiddlewareFunc) {
	events := e.Group("/api/v1/events", auth)
	events.GET("/calendar", h.Calendar)
	events.POST("", h.CreateEvent, admin)
	events.GET("/:id", h.GetEvent)
	events.PUT("/:id", h.UpdateEvent, admin)
	events.DELETE("/:id", h.DeleteEvent, admin)
	events.POST("/:id/signup", h.Signup)
	events.DELETE("/:id/signup", h.Unregister)
	events.GET("/:id/registrations", h.ListRegistrations, admin)
	events.POST("/:id/registrations", h.AssignUser, admin)
	events.DELETE("/:id/registrations/:userID", h.RemoveUser, admin)
}

// Calendar returns the rolling two-week window with each event already laid
// out into day/hour grid cells.
func (h *EventHandler) Calendar(c echo.Context) error {
	ctx := c.Request().Context()

	events, start, end, err := h.svc.ListWindow(ctx, time.Now())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	userID, _ := c.Get(middleware.ContextUserID).(uint)
	myIDs, err := h.svc.RegisteredEventIDs(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := dto.CalendarResponse{
		WindowStart: start,
		WindowEnd:   end,
		Events:      make([]dto.EventResponse, 0, len(events)),
		Cells:       make([]dto.CalendarCell, 0, len(events)),
		MyEventIDs:  myIDs,
	}

	for i := range events {
		left, err := h.svc.SpotsLeft(ctx, &events[i])
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		resp.Events = append(resp.Events, dto.ToEventResponse(&events[i], left))
	}

	for _, cell := range service.GridLayout(events, start) {
		resp.Cells = append(resp.Cells, dto.CalendarCell{
			EventID:     cell.Event.ID,
			Day:         cell.Day,
			Hour:        cell.Hour,
			StartMinute: cell.StartMinute,
			EndMinute:   cell.EndMinute,
			IsFirst:     cell.IsFirst,
			Name:        cell.Event.Name,
			ColorHex:    cell.Event.ColorHex(),
		})
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req dto.EventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	event, err := h.svc.CreateEvent(c.Request().Context(), req.ToModel())
	if err != nil {
		return mapEventError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToEventResponse(event, event.Capacity))
}

func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	event, err := h.svc.GetEvent(c.Request().Context(), id)
	if err != nil {
		return mapEventError(err)
	}

	left, err := h.svc.SpotsLeft(c.Request().Context(), event)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToEventResponse(event, left))
}

func (h *EventHandler) UpdateEvent(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.EventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	event, err := h.svc.UpdateEvent(c.Request().Context(), id, req.ToModel())
	if err != nil {
		return mapEventError(err)
	}

	left, err := h.svc.SpotsLeft(c.Request().Context(), event)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToEventResponse(event, left))
}

func (h *EventHandler) DeleteEvent(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.svc.DeleteEvent(c.Request().Context(), id); err != nil {
		return mapEventError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *EventHandler) Signup(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	userID, _ := c.Get(middleware.ContextUserID).(uint)

	if err := h.svc.Signup(c.Request().Context(), id, userID); err != nil {
		return mapEventError(err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "registered"})
}

func (h *EventHandler) Unregister(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	userID, _ := c.Get(middleware.ContextUserID).(uint)

	if err := h.svc.Unregister(c.Request().Context(), id, userID); err != nil {
		return mapEventError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *EventHandler) ListRegistrations(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	regs, err := h.svc.Participants(c.Request().Context(), id)
	if err != nil {
		return mapEventError(err)
	}

	resp := make([]dto.RegistrationResponse, 0, len(regs))
	for i := range regs {
		resp = append(resp, dto.ToRegistrationResponse(&regs[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *EventHandler) AssignUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.AssignUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.UserID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	if err := h.svc.AdminAssign(c.Request().Context(), id, req.UserID); err != nil {
		return mapEventError(err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "registered"})
}

func (h *EventHandler) RemoveUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	userID, err := parseParamID(c, "userID")
	if err != nil {
		return err
	}

	if err := h.svc.AdminRemove(c.Request().Context(), id, userID); err != nil {
		return mapEventError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func mapEventError(err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrRegistrationNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNoSpots), errors.Is(err, service.ErrAlreadyRegistered):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/bgaal/passhub/internal/dto"
	"github.com/bgaal/passhub/internal/middleware"
	"github.com/bgaal/passhub/internal/models"
	"github.com/bgaal/passhub/internal/service"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) RegisterRoutes(e *echo.Echo, auth, admin echo.MiddlewareFunc) {
	users := e.Group("/api/v1/users", auth)
	users.GET("/me", h.Me)
	users.GET("", h.ListUsers, admin)
	users.POST("", h.CreateUser, admin)
	users.GET("/:id", h.GetUser, admin)
	users.PUT("/:id", h.UpdateUser, admin)
	users.DELETE("/:id", h.DeleteUser, admin)
}

func (h *UserHandler) Me(c echo.Context) error {
	userID, _ := c.Get(middleware.ContextUserID).(uint)
	user, err := h.svc.GetUser(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, dto.ToUserResponse(&users[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) CreateUser(c echo.Context) error {
	var req dto.UserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.svc.CreateUser(c.Request().Context(), service.UserInput{
		Username:            req.Username,
		Email:               req.Email,
		Password:            req.Password,
		Role:                models.Role(req.Role),
		WeeklyReminderOptIn: req.WeeklyReminderOptIn,
	})
	if err != nil {
		return mapUserError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	user, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.UserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.svc.UpdateUser(c.Request().Context(), id, service.UserInput{
		Username:            req.Username,
		Email:               req.Email,
		Password:            req.Password,
		Role:                models.Role(req.Role),
		WeeklyReminderOptIn: req.WeeklyReminderOptIn,
	})
	if err != nil {
		return mapUserError(err)
	}

	return c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.svc.DeleteUser(c.Request().Context(), id); err != nil {
		return mapUserError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func mapUserError(err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrProtectedUser):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func parseID(c echo.Context) (uint, error) {
	return parseParamID(c, "id")
}

func parseParamID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}

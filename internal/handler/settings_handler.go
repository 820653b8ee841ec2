package handler

import (
	"errors"
	"net/http"

	"github.com/bgaal/passhub/internal/dto"
	"github.com/bgaal/passhub/internal/service"
	"github.com/labstack/echo/v4"
)

type SettingsHandler struct {
	svc service.SettingsService
}

func NewSettingsHandler(svc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

func (h *SettingsHandler) RegisterRoutes(e *echo.Echo, auth, admin echo.MiddlewareFunc) {
	settings := e.Group("/api/v1/settings", auth, admin)
	settings.GET("/email", h.GetSettings)
	settings.PUT("/email", h.UpdateSettings)
}

// GetSettings creates the singleton row on first read.
func (h *SettingsHandler) GetSettings(c echo.Context) error {
	settings, err := h.svc.GetSettings(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, settings)
}

func (h *SettingsHandler) UpdateSettings(c echo.Context) error {
	var req dto.EmailSettingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	settings, err := h.svc.UpdateSettings(c.Request().Context(), req.ToModel())
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, settings)
}

package handler

import (
	"errors"
	"net/http"

	"github.com/bgaal/passhub/internal/dto"
	"github.com/bgaal/passhub/internal/middleware"
	"github.com/bgaal/passhub/internal/models"
	"github.com/bgaal/passhub/internal/service"
	"github.com/labstack/echo/v4"
)

type PassHandler struct {
	svc service.PassService
}

func NewPassHandler(svc service.PassService) *PassHandler {
	return &PassHandler{svc: svc}
}

func (h *PassHandler) RegisterRoutes(e *echo.Echo, auth, admin echo.MiddlewareFunc) {
	passes := e.Group("/api/v1/passes", auth)
	passes.GET("/mine", h.ListMyPasses)
	passes.GET("", h.ListPasses, admin)
	passes.POST("", h.CreatePass, admin)
	passes.GET("/:id", h.GetPass)
	passes.PUT("/:id", h.ExtendPass, admin)
	passes.DELETE("/:id", h.DeletePass, admin)
	passes.POST("/:id/use", h.UsePass, admin)
	passes.POST("/:id/undo", h.UndoUse, admin)
	passes.GET("/:id/qr", h.QRCode)
}

func (h *PassHandler) ListPasses(c echo.Context) error {
	passes, err := h.svc.ListPasses(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, toPassResponses(passes))
}

func (h *PassHandler) ListMyPasses(c echo.Context) error {
	userID, _ := c.Get(middleware.ContextUserID).(uint)
	passes, err := h.svc.ListUserPasses(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, toPassResponses(passes))
}

func (h *PassHandler) CreatePass(c echo.Context) error {
	var req dto.PassRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	pass, err := h.svc.CreatePass(c.Request().Context(), req.ToModel())
	if err != nil {
		return mapPassError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToPassResponse(pass))
}

func (h *PassHandler) GetPass(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	pass, err := h.svc.GetPass(c.Request().Context(), id)
	if err != nil {
		return mapPassError(err)
	}
	return c.JSON(http.StatusOK, dto.ToPassResponse(pass))
}

func (h *PassHandler) ExtendPass(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.PassRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	pass, err := h.svc.ExtendPass(c.Request().Context(), id, req.ToModel())
	if err != nil {
		return mapPassError(err)
	}
	return c.JSON(http.StatusOK, dto.ToPassResponse(pass))
}

func (h *PassHandler) DeletePass(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.svc.DeletePass(c.Request().Context(), id); err != nil {
		return mapPassError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PassHandler) UsePass(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	pass, err := h.svc.UsePass(c.Request().Context(), id)
	if err != nil {
		return mapPassError(err)
	}
	return c.JSON(http.StatusOK, dto.ToPassResponse(pass))
}

func (h *PassHandler) UndoUse(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	pass, err := h.svc.UndoUse(c.Request().Context(), id)
	if err != nil {
		return mapPassError(err)
	}
	return c.JSON(http.StatusOK, dto.ToPassResponse(pass))
}

func (h *PassHandler) QRCode(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if _, err := h.svc.GetPass(c.Request().Context(), id); err != nil {
		return mapPassError(err)
	}

	png, err := h.svc.VerifyCode(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

func mapPassError(err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrPassNotFound), errors.Is(err, service.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrPassNotUsable), errors.Is(err, service.ErrNoUsages):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func toPassResponses(passes []models.Pass) []dto.PassResponse {
	resp := make([]dto.PassResponse, 0, len(passes))
	for i := range passes {
		resp = append(resp, dto.ToPassResponse(&passes[i]))
	}
	return resp
}

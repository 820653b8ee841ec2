package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bgaal/passhub/internal/dto"
	"github.com/bgaal/passhub/internal/models"
	"github.com/bgaal/passhub/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// --- Mock PassService ---

type mockPassService struct {
	createFn func(ctx context.Context, pass *models.Pass) (*models.Pass, error)
	extendFn func(ctx context.Context, id uint, fields *models.Pass) (*models.Pass, error)
	deleteFn func(ctx context.Context, id uint) error
	useFn    func(ctx context.Context, id uint) (*models.Pass, error)
	undoFn   func(ctx context.Context, id uint) (*models.Pass, error)
	getFn    func(ctx context.Context, id uint) (*models.Pass, error)
	listFn   func(ctx context.Context) ([]models.Pass, error)
	listByFn func(ctx context.Context, userID uint) ([]models.Pass, error)
	qrCodeFn func(id uint) ([]byte, error)
}

func (m *mockPassService) CreatePass(ctx context.Context, pass *models.Pass) (*models.Pass, error) {
	return m.createFn(ctx, pass)
}
func (m *mockPassService) ExtendPass(ctx context.Context, id uint, fields *models.Pass) (*models.Pass, error) {
	return m.extendFn(ctx, id, fields)
}
func (m *mockPassService) DeletePass(ctx context.Context, id uint) error {
	return m.deleteFn(ctx, id)
}
func (m *mockPassService) UsePass(ctx context.Context, id uint) (*models.Pass, error) {
	return m.useFn(ctx, id)
}
func (m *mockPassService) UndoUse(ctx context.Context, id uint) (*models.Pass, error) {
	return m.undoFn(ctx, id)
}
func (m *mockPassService) GetPass(ctx context.Context, id uint) (*models.Pass, error) {
	return m.getFn(ctx, id)
}
func (m *mockPassService) ListPasses(ctx context.Context) ([]models.Pass, error) {
	return m.listFn(ctx)
}
func (m *mockPassService) ListUserPasses(ctx context.Context, userID uint) ([]models.Pass, error) {
	return m.listByFn(ctx, userID)
}
func (m *mockPassService) VerifyCode(id uint) ([]byte, error) {
	return m.qrCodeFn(id)
}

func samplePass() *models.Pass {
	return &models.Pass{
		ID:        1,
		Type:      "10 alkalmas",
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		TotalUses: 10,
		Used:      3,
		UserID:    7,
	}
}

// --- Tests ---

func TestUsePass_Handler_Success(t *testing.T) {
	svc := &mockPassService{
		useFn: func(ctx context.Context, id uint) (*models.Pass, error) {
			p := samplePass()
			p.Used = 4
			return p, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/passes/1/use", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewPassHandler(svc)
	err := h.UsePass(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.PassResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.Used)
	assert.Equal(t, 6, resp.Remaining)
}

func TestUsePass_Handler_NotUsable(t *testing.T) {
	svc := &mockPassService{
		useFn: func(ctx context.Context, id uint) (*models.Pass, error) {
			return nil, service.ErrPassNotUsable
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/passes/1/use", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewPassHandler(svc)
	err := h.UsePass(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
}

func TestUndoUse_Handler_NoUsages(t *testing.T) {
	svc := &mockPassService{
		undoFn: func(ctx context.Context, id uint) (*models.Pass, error) {
			return nil, service.ErrNoUsages
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/passes/1/undo", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewPassHandler(svc)
	err := h.UndoUse(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
}

func TestCreatePass_Handler_Success(t *testing.T) {
	svc := &mockPassService{
		createFn: func(ctx context.Context, pass *models.Pass) (*models.Pass, error) {
			pass.ID = 1
			return pass, nil
		},
	}

	e := echo.New()
	body := `{"type":"10 alkalmas","start_date":"2026-03-01T00:00:00Z","end_date":"2026-03-31T00:00:00Z","total_uses":10,"user_id":7}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/passes", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewPassHandler(svc)
	err := h.CreatePass(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.PassResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(1), resp.ID)
	assert.Equal(t, "10 alkalmas", resp.Type)
	assert.Equal(t, uint(7), resp.UserID)
}

func TestCreatePass_Handler_ValidationError(t *testing.T) {
	svc := &mockPassService{
		createFn: func(ctx context.Context, pass *models.Pass) (*models.Pass, error) {
			return nil, service.ErrValidation
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/passes", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewPassHandler(svc)
	err := h.CreatePass(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestGetPass_Handler_NotFound(t *testing.T) {
	svc := &mockPassService{
		getFn: func(ctx context.Context, id uint) (*models.Pass, error) {
			return nil, service.ErrPassNotFound
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/passes/99", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99")

	h := NewPassHandler(svc)
	err := h.GetPass(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestQRCode_Handler(t *testing.T) {
	svc := &mockPassService{
		getFn: func(ctx context.Context, id uint) (*models.Pass, error) {
			return samplePass(), nil
		},
		qrCodeFn: func(id uint) ([]byte, error) {
			return []byte{0x89, 'P', 'N', 'G'}, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/passes/1/qr", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewPassHandler(svc)
	err := h.QRCode(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, rec.Body.Bytes())
}

func TestUsePass_Handler_InvalidID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/passes/abc/use", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	h := NewPassHandler(nil)
	err := h.UsePass(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

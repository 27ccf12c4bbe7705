package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rrhh-digital/legajo-api/internal/dto"
	"github.com/rrhh-digital/legajo-api/internal/middleware"
	"github.com/rrhh-digital/legajo-api/internal/models"
	appErrors "github.com/rrhh-digital/legajo-api/pkg/errors"
)

type eliminacionServiceMock struct {
	listResp     []models.EliminacionSolicitud
	listErr      error
	reviewResp   *models.EliminacionSolicitud
	reviewErr    error
	lastQuery    dto.EliminacionQuery
	lastID       string
	lastReview   dto.ReviewEliminacionRequest
	listCalled   bool
	reviewCalled bool
}

func (m *eliminacionServiceMock) List(ctx context.Context, query dto.EliminacionQuery, actor *models.JWTClaims) ([]models.EliminacionSolicitud, error) {
	m.listCalled = true
	m.lastQuery = query
	return m.listResp, m.listErr
}

func (m *eliminacionServiceMock) Review(ctx context.Context, id string, req dto.ReviewEliminacionRequest, actor *models.JWTClaims) (*models.EliminacionSolicitud, error) {
	m.reviewCalled = true
	m.lastID = id
	m.lastReview = req
	return m.reviewResp, m.reviewErr
}

func TestEliminacionHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &eliminacionServiceMock{
		listResp: []models.EliminacionSolicitud{{ID: "sol-1", Tipo: models.EliminacionDocumento}},
	}
	handler := NewEliminacionHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/eliminaciones?estado=PENDIENTE&tipo=DOCUMENTO", nil)
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u-rrhh", Role: models.RoleRRHH})

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, mockSvc.listCalled)
	assert.Equal(t, "PENDIENTE", mockSvc.lastQuery.Estado)
	assert.Equal(t, "DOCUMENTO", mockSvc.lastQuery.Tipo)
}

func TestEliminacionHandlerReview(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &eliminacionServiceMock{
		reviewResp: &models.EliminacionSolicitud{ID: "sol-1", Estado: models.EliminacionAprobada},
	}
	handler := NewEliminacionHandler(mockSvc)

	payload, _ := json.Marshal(dto.ReviewEliminacionRequest{Estado: models.EliminacionAprobada, Nota: "ok"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/eliminaciones/sol-1/revision", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "sol-1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u-rrhh", Role: models.RoleRRHH})

	handler.Review(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, mockSvc.reviewCalled)
	assert.Equal(t, "sol-1", mockSvc.lastID)
	assert.Equal(t, models.EliminacionAprobada, mockSvc.lastReview.Estado)
}

func TestEliminacionHandlerReviewInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &eliminacionServiceMock{}
	handler := NewEliminacionHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/eliminaciones/sol-1/revision", bytes.NewBufferString(`{"estado":`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "sol-1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u-rrhh", Role: models.RoleRRHH})

	handler.Review(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, mockSvc.reviewCalled)
}

func TestEliminacionHandlerReviewConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &eliminacionServiceMock{
		reviewErr: appErrors.Clone(appErrors.ErrConflict, "la solicitud ya fue revisada"),
	}
	handler := NewEliminacionHandler(mockSvc)

	payload, _ := json.Marshal(dto.ReviewEliminacionRequest{Estado: models.EliminacionRechazada})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/eliminaciones/sol-1/revision", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "sol-1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u-rrhh", Role: models.RoleRRHH})

	handler.Review(c)
	require.Equal(t, http.StatusConflict, w.Code)
}

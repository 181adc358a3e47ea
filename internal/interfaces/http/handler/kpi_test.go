package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	appkpi "github.com/bizhub/backend/internal/application/kpi"
	"github.com/bizhub/backend/internal/domain/kpi"
	"github.com/bizhub/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type kpiRepoStub struct {
	mock.Mock
}

func (m *kpiRepoStub) Save(ctx context.Context, k *kpi.KPI) error {
	return m.Called(ctx, k).Error(0)
}

func (m *kpiRepoStub) FindByID(ctx context.Context, id uuid.UUID) (*kpi.KPI, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kpi.KPI), args.Error(1)
}

func (m *kpiRepoStub) FindAllByBusiness(ctx context.Context, businessID uuid.UUID) ([]kpi.KPI, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kpi.KPI), args.Error(1)
}

func (m *kpiRepoStub) FindByPeriod(ctx context.Context, businessID uuid.UUID, period time.Time) ([]kpi.KPI, error) {
	args := m.Called(ctx, businessID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kpi.KPI), args.Error(1)
}

func (m *kpiRepoStub) Update(ctx context.Context, k *kpi.KPI) error {
	return m.Called(ctx, k).Error(0)
}

func (m *kpiRepoStub) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func newKPITestRouter(t *testing.T, repo *kpiRepoStub, businessID uuid.UUID) *gin.Engine {
	t.Helper()
	service := appkpi.NewService(repo, nil, zap.NewNop())
	h := NewKPIHandler(service)

	engine := gin.New()
	group := engine.Group("/api/v1")
	group.Use(withBusinessContext(adminBusinessContext(businessID)))
	h.RegisterRoutes(group)
	return engine
}

func TestKPIHandler_Create(t *testing.T) {
	businessID := uuid.New()
	repo := new(kpiRepoStub)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*kpi.KPI")).Return(nil)

	engine := newKPITestRouter(t, repo, businessID)

	body := `{"name":"Store visits","target":"1000","period":"2025-03-17"}`
	req := httptest.NewRequest("POST", "/api/v1/kpis", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "Store visits", data["name"])
	assert.Equal(t, "2025-03-01", data["period"])
	repo.AssertExpectations(t)
}

func TestKPIHandler_Create_InvalidPeriodRejected(t *testing.T) {
	businessID := uuid.New()
	repo := new(kpiRepoStub)

	engine := newKPITestRouter(t, repo, businessID)

	body := `{"name":"Store visits","target":"1000","period":"March 2025"}`
	req := httptest.NewRequest("POST", "/api/v1/kpis", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestKPIHandler_List_PeriodQuery(t *testing.T) {
	businessID := uuid.New()
	period := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	target, err := kpi.NewKPI(businessID, "Store visits", decimal.NewFromInt(1000), period, nil)
	require.NoError(t, err)

	repo := new(kpiRepoStub)
	repo.On("FindByPeriod", mock.Anything, businessID, period).Return([]kpi.KPI{*target}, nil)

	engine := newKPITestRouter(t, repo, businessID)

	req := httptest.NewRequest("GET", "/api/v1/kpis?period=2025-03-01", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	items := resp.Data.([]interface{})
	require.Len(t, items, 1)
	repo.AssertExpectations(t)
}

func TestKPIHandler_Get_BadID(t *testing.T) {
	businessID := uuid.New()
	repo := new(kpiRepoStub)

	engine := newKPITestRouter(t, repo, businessID)

	req := httptest.NewRequest("GET", "/api/v1/kpis/not-a-uuid", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestKPIHandler_RecordProgress(t *testing.T) {
	businessID := uuid.New()
	period := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	target, err := kpi.NewKPI(businessID, "Store visits", decimal.NewFromInt(1000), period, nil)
	require.NoError(t, err)

	repo := new(kpiRepoStub)
	repo.On("FindByID", mock.Anything, target.ID).Return(target, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*kpi.KPI")).Return(nil)

	engine := newKPITestRouter(t, repo, businessID)

	body := `{"delta":"250"}`
	req := httptest.NewRequest("POST", "/api/v1/kpis/"+target.ID.String()+"/progress", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "250", data["current"])
	repo.AssertExpectations(t)
}

func TestKPIHandler_RouteWithoutScopeRejected(t *testing.T) {
	repo := new(kpiRepoStub)
	service := appkpi.NewService(repo, nil, zap.NewNop())
	h := NewKPIHandler(service)

	engine := gin.New()
	group := engine.Group("/api/v1")
	h.RegisterRoutes(group)

	req := httptest.NewRequest("GET", "/api/v1/kpis", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

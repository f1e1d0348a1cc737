package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"restaurant-recap/internal/middleware"
	"restaurant-recap/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStatisticsService struct {
	from, to *time.Time
	err      error
}

func (s *stubStatisticsService) GetStatistics(_ context.Context, from, to *time.Time) (*service.StatisticsResponse, error) {
	s.from, s.to = from, to
	if s.err != nil {
		return nil, s.err
	}
	return &service.StatisticsResponse{}, nil
}

func TestGetStatistics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	middleware.InitAuth(testSecret)
	stats := &stubStatisticsService{}
	r := gin.New()
	NewStatisticsHandler(stats).RegisterRoutes(r.Group(""))
	auth := bearer(t, middleware.RoleReadOnly)

	req := httptest.NewRequest(http.MethodGet, "/api/statistics/restaurants?start_date=2024-03-01", nil)
	req.Header.Set("Authorization", auth)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, stats.from)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *stats.from)
	assert.Nil(t, stats.to)

	stats.err = fmt.Errorf("%w: start_date is after end_date", service.ErrValidation)
	req = httptest.NewRequest(http.MethodGet, "/api/statistics/restaurants?start_date=2024-03-10&end_date=2024-03-01", nil)
	req.Header.Set("Authorization", auth)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/statistics/restaurants", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

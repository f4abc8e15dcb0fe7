package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	_ "github.com/rafaelleal24/stock/docs"
	"github.com/rafaelleal24/stock/internal/adapters/config"
	adapterhttp "github.com/rafaelleal24/stock/internal/adapters/http"
	"github.com/rafaelleal24/stock/internal/adapters/http/controllers"
	"github.com/rafaelleal24/stock/internal/core/domain"
	"github.com/rafaelleal24/stock/internal/core/port/mock"
	"github.com/rafaelleal24/stock/internal/core/service"
)

type countingLimiter struct {
	mu     sync.Mutex
	counts map[string]int
	err    error
}

func (l *countingLimiter) Allow(_ context.Context, key string, limit int, _ time.Duration) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[key]++
	return l.counts[key] <= limit, nil
}

func setupRouter(t *testing.T, limiter *countingLimiter) (*gin.Engine, *mock.MockStockPort) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)

	stockRepo := mock.NewMockStockPort(ctrl)
	stockCache := mock.NewMockCachePort[domain.Stock](ctrl)
	stockCache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	svc := service.NewStockService(stockRepo, mock.NewMockEventPort(ctrl), mock.NewMockTransactionManager(ctrl), stockCache, nil, time.Minute)

	router := adapterhttp.NewRouter(
		controllers.NewHealthController(nil),
		controllers.NewStockController(svc),
		limiter,
		config.RateLimitConfig{Limit: 1, Window: time.Minute},
	)

	engine := gin.New()
	router.SetupRoutes(engine)
	return engine, stockRepo
}

func serve(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestRouter_ServesSwaggerDoc(t *testing.T) {
	engine, _ := setupRouter(t, &countingLimiter{counts: map[string]int{}})

	rec := serve(engine, http.MethodGet, "/swagger/doc.json", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/api/v1/stocks")
	assert.Contains(t, paths, "/api/v1/stocks/{sku}")
}

func TestRouter_Health(t *testing.T) {
	engine, _ := setupRouter(t, &countingLimiter{counts: map[string]int{}})

	rec := serve(engine, http.MethodGet, "/api/v1/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RateLimitsWrites(t *testing.T) {
	engine, _ := setupRouter(t, &countingLimiter{counts: map[string]int{}})

	first := serve(engine, http.MethodPost, "/api/v1/stocks", `{"sku":"","name":"x"}`)
	assert.Equal(t, http.StatusBadRequest, first.Code)

	second := serve(engine, http.MethodPost, "/api/v1/stocks", `{"sku":"","name":"x"}`)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "60", second.Header().Get("Retry-After"))
}

func TestRouter_ReadsAreNotRateLimited(t *testing.T) {
	engine, stockRepo := setupRouter(t, &countingLimiter{counts: map[string]int{}})
	stockRepo.EXPECT().FindBySku(gomock.Any(), "SKU1").Return(nil, nil).Times(3)

	for i := 0; i < 3; i++ {
		rec := serve(engine, http.MethodGet, "/api/v1/stocks/SKU1", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}
}

func TestRouter_LimiterFailureLetsRequestsThrough(t *testing.T) {
	engine, stockRepo := setupRouter(t, &countingLimiter{err: errors.New("redis down")})
	stockRepo.EXPECT().FindBySku(gomock.Any(), "missing").Return(nil, nil)

	rec := serve(engine, http.MethodPut, "/api/v1/stocks/missing", `{"stock_operation":"INCREASE","quantity":1}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

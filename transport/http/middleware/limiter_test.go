package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"guesthouse/config"
	otelMocks "guesthouse/infras/otel/mocks"
	cacheMocks "guesthouse/shared/cache/mocks"
	"guesthouse/shared/constant"
	"guesthouse/transport/http/middleware"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func limited(t *testing.T, enable bool) (http.Handler, *cacheMocks.MockRedisCache) {
	ctrl := gomock.NewController(t)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = enable
	cfg.App.RateLimiter.MaxRequests = 3
	cfg.App.RateLimiter.WindowSeconds = 60

	app := middleware.NewAppMiddleware(otelMocks.NewOtel(), cfg, redisCache)
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	return app.RateLimit()(ok), redisCache
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name          string
		count         int64
		err           error
		wantCode      int
		wantRemaining string
	}{
		{name: "first request", count: 1, wantCode: http.StatusOK, wantRemaining: "2"},
		{name: "last allowed request", count: 3, wantCode: http.StatusOK, wantRemaining: "0"},
		{name: "over the limit", count: 4, wantCode: http.StatusTooManyRequests, wantRemaining: "0"},
		{name: "redis down lets requests through", err: errors.New("connection refused"), wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, redisCache := limited(t, true)

			redisCache.EXPECT().
				Incr(gomock.Any(), gomock.Cond(func(key any) bool { return strings.HasPrefix(key.(string), "limiter:192.0.2.10:") }), 60).
				Return(tt.count, tt.err)

			req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
			req.RemoteAddr = "192.0.2.10:51234"
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantRemaining, rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
		})
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	handler, _ := limited(t, false)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rooms", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

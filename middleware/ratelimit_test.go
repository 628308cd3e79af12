package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ariebrainware/biosecure-portal/config"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func setupRedisMock(t *testing.T) redismock.ClientMock {
	t.Helper()
	rdb, mock := redismock.NewClientMock()
	config.SetRedisClientForTest(rdb)
	t.Cleanup(func() { config.SetRedisClientForTest(nil) })
	return mock
}

func newRateLimitedRouter(cfg RateLimitConfig) *gin.Engine {
	r := gin.New()
	r.Use(RateLimiter(cfg))
	r.POST("/login", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func postFrom(r http.Handler, ip string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = ip + ":1234"
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiter_WithoutRedis(t *testing.T) {
	config.SetRedisClientForTest(nil)
	r := newRateLimitedRouter(RateLimitConfig{Limit: 5, Window: 15 * time.Minute})

	for i := 0; i < 10; i++ {
		if code := postFrom(r, "192.168.1.1"); code != http.StatusOK {
			t.Errorf("Request %d: expected status 200, got %d", i+1, code)
		}
	}
}

func TestRateLimiter_BlocksAfterLimit(t *testing.T) {
	mock := setupRedisMock(t)
	r := newRateLimitedRouter(RateLimitConfig{Limit: 2, Window: time.Minute})
	key := "ratelimit:/login:192.168.1.1"

	mock.ExpectIncr(key).SetVal(1)
	mock.ExpectExpire(key, time.Minute).SetVal(true)
	mock.ExpectIncr(key).SetVal(2)
	mock.ExpectIncr(key).SetVal(3)

	assert.Equal(t, http.StatusOK, postFrom(r, "192.168.1.1"))
	assert.Equal(t, http.StatusOK, postFrom(r, "192.168.1.1"))
	assert.Equal(t, http.StatusTooManyRequests, postFrom(r, "192.168.1.1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateLimiter_RedisErrorAllowsRequest(t *testing.T) {
	mock := setupRedisMock(t)
	r := newRateLimitedRouter(RateLimitConfig{})

	mock.ExpectIncr("ratelimit:/login:10.0.0.1").SetErr(errors.New("connection refused"))
	assert.Equal(t, http.StatusOK, postFrom(r, "10.0.0.1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResetRateLimit(t *testing.T) {
	config.SetRedisClientForTest(nil)
	assert.Error(t, ResetRateLimit(context.Background(), "192.168.1.1", "/login"))

	mock := setupRedisMock(t)
	mock.ExpectDel("ratelimit:/login:192.168.1.1").SetVal(1)
	assert.NoError(t, ResetRateLimit(context.Background(), "192.168.1.1", "/login"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

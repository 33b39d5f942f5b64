package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/config"
)

func newContext(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.7")
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestBuildRateKey(t *testing.T) {
	c, _ := newContext(http.MethodPost, "/venues/create")
	c.SetPath("/venues/create")

	cfg := config.RateLimitConfig{Prefix: "fyyur:rl"}
	cases := map[string]string{
		"ip":       "fyyur:rl:ip:10.0.0.7",
		"route":    "fyyur:rl:route:POST /venues/create",
		"ip_route": "fyyur:rl:ip:10.0.0.7:route:POST /venues/create",
		"":         "fyyur:rl:ip:10.0.0.7:route:POST /venues/create",
	}
	for strategy, want := range cases {
		cfg.KeyStrategy = strategy
		assert.Equal(t, want, buildRateKey(cfg, c), strategy)
	}
}

func TestTokenBucketPassesThroughWithoutRedis(t *testing.T) {
	log, _ := test.NewNullLogger()
	mw := NewTokenBucket(config.RateLimitConfig{Enabled: true, Capacity: 1}, nil, log)

	calls := 0
	h := mw(func(c echo.Context) error {
		calls++
		return c.NoContent(http.StatusNoContent)
	})
	for i := 0; i < 3; i++ {
		c, rec := newContext(http.MethodPost, "/shows/create")
		require.NoError(t, h(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}
	assert.Equal(t, 3, calls)
}

func newLimitedServer(t *testing.T, cfg config.RateLimitConfig) (*echo.Echo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	log, _ := test.NewNullLogger()
	e := echo.New()
	e.POST("/venues/create", func(c echo.Context) error {
		return c.String(http.StatusOK, "listed")
	}, NewTokenBucket(cfg, rdb, log))
	return e, mr
}

func submit(e *echo.Echo, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/venues/create", nil)
	req.Header.Set(echo.HeaderXRealIP, ip)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestTokenBucketRejectsOnceCapacityIsUsed(t *testing.T) {
	cfg := config.RateLimitConfig{
		Enabled:        true,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Minute,
		TTL:            10 * time.Minute,
		KeyStrategy:    "ip_route",
		Prefix:         "fyyur:rl",
	}
	e, mr := newLimitedServer(t, cfg)

	rec := submit(e, "10.0.0.7")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))

	rec = submit(e, "10.0.0.7")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = submit(e, "10.0.0.7")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	retry, err := strconv.Atoi(rec.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.Greater(t, retry, 0)
	assert.LessOrEqual(t, retry, 60)
	assert.Contains(t, rec.Body.String(), "Too many submissions.")

	// another client has its own bucket
	rec = submit(e, "10.0.0.8")
	assert.Equal(t, http.StatusOK, rec.Code)

	key := "fyyur:rl:ip:10.0.0.7:route:POST /venues/create"
	require.True(t, mr.Exists(key))
	assert.Equal(t, 10*time.Minute, mr.TTL(key))
}

func TestTokenBucketFailsOpenWhenRedisDrops(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, Capacity: 1, RefillTokens: 1, RefillInterval: time.Minute, TTL: time.Minute}
	e, mr := newLimitedServer(t, cfg)

	require.Equal(t, http.StatusOK, submit(e, "10.0.0.7").Code)
	mr.Close()
	assert.Equal(t, http.StatusOK, submit(e, "10.0.0.7").Code)
}

func TestAsInt64(t *testing.T) {
	assert.Equal(t, int64(4), asInt64(int64(4)))
	assert.Equal(t, int64(4), asInt64(4))
	assert.Equal(t, int64(4), asInt64(4.0))
	assert.Equal(t, int64(12), asInt64("12"))
	assert.Equal(t, int64(0), asInt64("x"))
	assert.Equal(t, int64(0), asInt64(nil))
}

func TestRequestLoggerTagsRequest(t *testing.T) {
	log, hook := test.NewNullLogger()
	e := echo.New()
	e.Use(RequestLogger(log))
	e.GET("/venues", func(c echo.Context) error {
		l, ok := c.Get(LoggerKey).(logrus.FieldLogger)
		require.True(t, ok)
		l.Info("listing venues")
		return c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/venues", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	rid := rec.Header().Get(RequestIDHeader)
	require.NotEmpty(t, rid)
	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, rid, entries[0].Data["request_id"])
	assert.Equal(t, "request processed", entries[1].Message)
	assert.Equal(t, http.StatusOK, entries[1].Data["status"])
	assert.Equal(t, "/venues", entries[1].Data["path"])
}

func TestRequestLoggerKeepsValidClientID(t *testing.T) {
	log, _ := test.NewNullLogger()
	e := echo.New()
	e.Use(RequestLogger(log))
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	const rid = "6f1c7c3e-6d0b-4c1e-9a57-1b7d0c7e2f10"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, rid)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, rid, rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get(RequestIDHeader))
}

func TestRequestLoggerReportsHandlerErrors(t *testing.T) {
	log, hook := test.NewNullLogger()
	e := echo.New()
	e.Use(RequestLogger(log))
	e.GET("/boom", func(echo.Context) error { return errors.New("boom") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, logrus.ErrorLevel, last.Level)
	assert.Equal(t, "request failed", last.Message)
}

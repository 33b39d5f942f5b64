package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(e *echo.Echo, cookies ...*http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func flashCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	var last *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == CookieName {
			last = ck
		}
	}
	require.NotNil(t, last, "no flash cookie set")
	return last
}

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStore(rdb, "fyyur:flash", ttl), mr
}

func TestStoresCarryMessagesToNextRequest(t *testing.T) {
	cookieStore, err := NewCookieStore("test-secret", time.Minute)
	require.NoError(t, err)
	redisStore, _ := newRedisStore(t, time.Minute)

	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"cookie": cookieStore,
		"redis":  redisStore,
	}
	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			e := echo.New()

			c1, rec1 := newContext(e)
			require.NoError(t, store.Add(c1, Message{Category: Info, Text: "Venue The Musical Hop was successfully listed!"}))
			require.NoError(t, store.Add(c1, Message{Category: Danger, Text: "name-This field is required."}))

			c2, _ := newContext(e, flashCookie(t, rec1))
			msgs, err := store.Pop(c2)
			require.NoError(t, err)
			assert.Equal(t, []Message{
				{Category: Info, Text: "Venue The Musical Hop was successfully listed!"},
				{Category: Danger, Text: "name-This field is required."},
			}, msgs)

			again, err := store.Pop(c2)
			require.NoError(t, err)
			assert.Empty(t, again)
		})
	}
}

func TestStoresPopWithinSameRequest(t *testing.T) {
	cookieStore, err := NewCookieStore("test-secret", time.Minute)
	require.NoError(t, err)

	redisStore, _ := newRedisStore(t, time.Minute)

	for name, store := range map[string]Store{"memory": NewMemoryStore(), "cookie": cookieStore, "redis": redisStore} {
		t.Run(name, func(t *testing.T) {
			c, _ := newContext(echo.New())
			require.NoError(t, store.Add(c, Message{Category: Info, Text: "Editing successful!"}))
			msgs, err := store.Pop(c)
			require.NoError(t, err)
			assert.Equal(t, []Message{{Category: Info, Text: "Editing successful!"}}, msgs)
		})
	}
}

func TestMemoryStoreSeparatesBrowsers(t *testing.T) {
	store := NewMemoryStore()
	e := echo.New()

	c1, _ := newContext(e)
	require.NoError(t, store.Add(c1, Message{Category: Info, Text: "for the first browser"}))

	c2, _ := newContext(e)
	msgs, err := store.Pop(c2)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestCookieStoreRejectsTamperedCookie(t *testing.T) {
	store, err := NewCookieStore("test-secret", time.Minute)
	require.NoError(t, err)
	e := echo.New()

	c1, rec1 := newContext(e)
	require.NoError(t, store.Add(c1, Message{Category: Info, Text: "hello"}))
	ck := flashCookie(t, rec1)

	forged, err := NewCookieStore("other-secret", time.Minute)
	require.NoError(t, err)
	c2, _ := newContext(e, ck)
	msgs, err := forged.Pop(c2)
	require.NoError(t, err)
	assert.Empty(t, msgs)

	ck.Value += "x"
	c3, _ := newContext(e, ck)
	msgs, err = store.Pop(c3)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestNewCookieStoreNeedsSecret(t *testing.T) {
	_, err := NewCookieStore("", time.Minute)
	assert.Error(t, err)
}

func TestRedisStoreKeepsMessagesUnderSessionKey(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	e := echo.New()

	c1, rec1 := newContext(e)
	require.NoError(t, store.Add(c1, Message{Category: Info, Text: "Artist Guns N Petals was successfully listed!"}))
	ck := flashCookie(t, rec1)

	key := "fyyur:flash:" + ck.Value
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Minute, mr.TTL(key))

	c2, _ := newContext(e, ck)
	msgs, err := store.Pop(c2)
	require.NoError(t, err)
	assert.Equal(t, []Message{{Category: Info, Text: "Artist Guns N Petals was successfully listed!"}}, msgs)
	assert.False(t, mr.Exists(key))
}

func TestRedisStoreMessagesExpire(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	e := echo.New()

	c1, rec1 := newContext(e)
	require.NoError(t, store.Add(c1, Message{Category: Info, Text: "Editing successful!"}))

	mr.FastForward(time.Minute + time.Second)

	c2, _ := newContext(e, flashCookie(t, rec1))
	msgs, err := store.Pop(c2)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestRedisStoreReportsOutage(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	mr.Close()

	c, _ := newContext(echo.New())
	assert.Error(t, store.Add(c, Message{Category: Info, Text: "lost"}))
	_, err := store.Pop(c)
	assert.Error(t, err)
}

package flash

import (
	"encoding/json"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each browser's pending messages in a Redis list under
// "<prefix>:<session id>". Lists expire after TTL so abandoned sessions do
// not accumulate.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(rdb *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = "flash"
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisStore{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(c echo.Context) string {
	return s.prefix + ":" + sessionID(c, s.ttl)
}

func (s *RedisStore) Add(c echo.Context, m Message) error {
	body, err := json.Marshal(m)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	key := s.key(c)
	pipe := s.rdb.TxPipeline()
	pipe.RPush(ctx, key, body)
	pipe.Expire(ctx, key, s.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Pop(c echo.Context) ([]Message, error) {
	ctx := c.Request().Context()
	key := s.key(c)
	pipe := s.rdb.TxPipeline()
	lr := pipe.LRange(ctx, key, 0, -1)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	var out []Message
	for _, raw := range lr.Val() {
		var m Message
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

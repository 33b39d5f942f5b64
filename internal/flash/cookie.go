package flash

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// CookieStore keeps pending messages in the browser inside an HS256
// signed token, so no server-side state is needed. Cookies with a bad
// signature or past their expiry are ignored.
type CookieStore struct {
	secret []byte
	ttl    time.Duration
}

type cookieClaims struct {
	Messages []Message `json:"msgs"`
	jwt.RegisteredClaims
}

const pendingKey = "flash.pending"

func NewCookieStore(secret string, ttl time.Duration) (*CookieStore, error) {
	if secret == "" {
		return nil, errors.New("flash: cookie store needs a secret")
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CookieStore{secret: []byte(secret), ttl: ttl}, nil
}

// pending returns the messages known for this request: the ones the browser
// sent plus any added since.
func (s *CookieStore) pending(c echo.Context) []Message {
	if msgs, ok := c.Get(pendingKey).([]Message); ok {
		return msgs
	}
	var msgs []Message
	if ck, err := c.Cookie(CookieName); err == nil && ck.Value != "" {
		msgs = s.decode(ck.Value)
	}
	c.Set(pendingKey, msgs)
	return msgs
}

func (s *CookieStore) decode(raw string) []Message {
	claims := &cookieClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil
	}
	return claims.Messages
}

func (s *CookieStore) Add(c echo.Context, m Message) error {
	msgs := append(s.pending(c), m)
	now := time.Now()
	claims := cookieClaims{
		Messages: msgs,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return err
	}
	c.Set(pendingKey, msgs)
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(s.ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *CookieStore) Pop(c echo.Context) ([]Message, error) {
	msgs := s.pending(c)
	c.Set(pendingKey, []Message{})
	if len(msgs) == 0 {
		return nil, nil
	}
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return msgs, nil
}

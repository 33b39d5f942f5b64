// Package flash carries one-line user messages from the request that
// produced them to the next page the browser renders.
package flash

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Categories understood by the templates.
const (
	Info   = "info"
	Danger = "danger"
)

// CookieName identifies the browser's flash session or signed payload.
const CookieName = "fyyur_flash"

// Message is a single flashed line.
type Message struct {
	Category string `json:"c"`
	Text     string `json:"t"`
}

// Store keeps flashed messages between requests. Pop returns and forgets
// every message queued for the current browser, including those added
// earlier in the same request.
type Store interface {
	Add(c echo.Context, m Message) error
	Pop(c echo.Context) ([]Message, error)
}

const sessionKey = "flash.session"

// sessionID returns the browser's flash session id, issuing a cookie for a
// new one when the request carried none.
func sessionID(c echo.Context, ttl time.Duration) string {
	if v, ok := c.Get(sessionKey).(string); ok && v != "" {
		return v
	}
	if ck, err := c.Cookie(CookieName); err == nil {
		if _, err := uuid.Parse(ck.Value); err == nil {
			c.Set(sessionKey, ck.Value)
			return ck.Value
		}
	}
	id := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	c.Set(sessionKey, id)
	return id
}

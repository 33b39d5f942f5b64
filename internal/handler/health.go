package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Health is used by load balancers and monitoring. It answers "ok" when
// the database responds to a ping within two seconds.
func (h *Handler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := h.VenueRepo.DB().PingContext(ctx); err != nil {
		h.logger(c).WithError(err).Warn("health check: database unreachable")
		return c.String(http.StatusServiceUnavailable, "database unavailable")
	}
	return c.String(http.StatusOK, "ok")
}

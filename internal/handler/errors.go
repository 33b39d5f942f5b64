package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HTTPError is the echo error handler. Missing pages and routes render
// the 404 page, everything else the 500 page. Internal details are logged
// and never written to the response.
func (h *Handler) HTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
	}

	log := h.logger(c).WithError(err).WithField("status", code)
	page := "errors/500"
	switch {
	case code == http.StatusNotFound || code == http.StatusMethodNotAllowed:
		page = "errors/404"
		log.Debug("not found")
	case code < http.StatusInternalServerError:
		log.Warn("request rejected")
		if rerr := c.String(code, http.StatusText(code)); rerr != nil {
			h.logger(c).WithError(rerr).Error("write error response failed")
		}
		return
	default:
		code = http.StatusInternalServerError
		log.Error("request failed")
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	if rerr := h.render(c, code, page, http.StatusText(code), nil); rerr != nil {
		h.logger(c).WithError(rerr).Error("render error page failed")
		_ = c.String(code, http.StatusText(code))
	}
}

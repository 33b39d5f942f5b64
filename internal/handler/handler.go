package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/fyyur/internal/flash"
	"github.com/iliyamo/fyyur/internal/forms"
	"github.com/iliyamo/fyyur/internal/middleware"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/render"
	"github.com/iliyamo/fyyur/internal/repository"
)

// ActivityPublisher emits activity events. Publishing is best effort.
type ActivityPublisher interface {
	Publish(ctx context.Context, ev queue.ActivityEvent) error
}

// Handler bundles the dependencies every route needs.
type Handler struct {
	VenueRepo  *repository.VenueRepo  // VenueRepo provides venue persistence
	ArtistRepo *repository.ArtistRepo // ArtistRepo provides artist persistence
	ShowRepo   *repository.ShowRepo   // ShowRepo provides show persistence
	Flash      flash.Store            // Flash carries messages to the next page
	Events     ActivityPublisher      // Events receives activity notifications
	Log        logrus.FieldLogger
	Now        func() time.Time // Now is the clock used to split past and upcoming shows
}

// NewHandler constructs a Handler and panics if a required dependency is
// nil. A nil publisher disables activity events.
func NewHandler(venues *repository.VenueRepo, artists *repository.ArtistRepo, shows *repository.ShowRepo,
	store flash.Store, events ActivityPublisher, log logrus.FieldLogger) *Handler {
	if venues == nil || artists == nil || shows == nil || store == nil || log == nil {
		panic("nil dependency passed to NewHandler")
	}
	return &Handler{
		VenueRepo:  venues,
		ArtistRepo: artists,
		ShowRepo:   shows,
		Flash:      store,
		Events:     events,
		Log:        log,
		Now:        time.Now,
	}
}

// parseID reads the :id path parameter. Anything that is not a positive
// integer is treated as a missing record.
func parseID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	return id, nil
}

func (h *Handler) logger(c echo.Context) logrus.FieldLogger {
	if l, ok := c.Get(middleware.LoggerKey).(logrus.FieldLogger); ok {
		return l
	}
	return h.Log
}

func (h *Handler) flash(c echo.Context, category, text string) {
	if err := h.Flash.Add(c, flash.Message{Category: category, Text: text}); err != nil {
		h.logger(c).WithError(err).Warn("flash add failed")
	}
}

func (h *Handler) flashErrors(c echo.Context, errs forms.ValidationErrors) {
	for _, line := range errs.Messages() {
		h.flash(c, flash.Danger, line)
	}
}

// render executes a page with the pending flash messages.
func (h *Handler) render(c echo.Context, code int, name, title string, data echo.Map) error {
	msgs, err := h.Flash.Pop(c)
	if err != nil {
		h.logger(c).WithError(err).Warn("flash pop failed")
	}
	return c.Render(code, name, render.Page{
		Title:   title,
		Path:    c.Request().URL.Path,
		Flashes: msgs,
		Data:    data,
	})
}

func (h *Handler) home(c echo.Context, code int) error {
	return h.render(c, code, "pages/home", "", nil)
}

func (h *Handler) publish(c echo.Context, ev queue.ActivityEvent) {
	if h.Events == nil {
		return
	}
	ev.OccurredAt = h.Now().UTC()
	if err := h.Events.Publish(c.Request().Context(), ev); err != nil {
		h.logger(c).WithError(err).WithField("kind", ev.Kind).Warn("activity publish failed")
	}
}

// Index renders the home page.
func (h *Handler) Index(c echo.Context) error {
	return h.home(c, http.StatusOK)
}

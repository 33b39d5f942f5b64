package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/flash"
	"github.com/iliyamo/fyyur/internal/forms"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
)

// ListShows renders every show with its venue and artist.
func (h *Handler) ListShows(c echo.Context) error {
	shows, err := h.ShowRepo.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "pages/shows", "Shows", echo.Map{"shows": newShowRows(shows)})
}

func (h *Handler) CreateShowForm(c echo.Context) error {
	return h.render(c, http.StatusOK, "forms/new_show", "New show", echo.Map{
		"form": forms.NewShowForm(h.Now()),
	})
}

// CreateShow books a show. Unknown artist or venue ids fail like any other
// store error.
func (h *Handler) CreateShow(c echo.Context) error {
	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	form := forms.BindShow(values)
	if errs := form.Validate(); errs != nil {
		h.flashErrors(c, errs)
		return h.home(c, http.StatusOK)
	}
	show, err := form.Show()
	if err != nil {
		var errs forms.ValidationErrors
		if errors.As(err, &errs) {
			h.flashErrors(c, errs)
		}
		return h.home(c, http.StatusOK)
	}

	if err := h.ShowRepo.Create(c.Request().Context(), show); err != nil {
		entry := h.logger(c).WithError(err).WithField("artist_id", show.ArtistID).WithField("venue_id", show.VenueID)
		if errors.Is(err, repository.ErrReference) {
			entry.Warn("show references unknown artist or venue")
		} else {
			entry.Error("create show failed")
		}
		h.flash(c, flash.Danger, "An error occurred. Show could not be listed.")
		return h.home(c, http.StatusOK)
	}

	h.publish(c, queue.ActivityEvent{
		Kind:      queue.ShowCreated,
		EntityID:  show.ID,
		ArtistID:  show.ArtistID,
		VenueID:   show.VenueID,
		StartTime: formatShowTime(show.StartTime),
	})
	h.flash(c, flash.Info, "Show was successfully listed!")
	return h.home(c, http.StatusOK)
}

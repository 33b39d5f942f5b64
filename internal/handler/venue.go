package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/flash"
	"github.com/iliyamo/fyyur/internal/forms"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
)

// ListVenues renders every venue grouped by city and state.
func (h *Handler) ListVenues(c echo.Context) error {
	ctx := c.Request().Context()
	venues, err := h.VenueRepo.ListAll(ctx)
	if err != nil {
		return err
	}
	upcoming, err := h.ShowRepo.UpcomingByVenue(ctx, h.Now())
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "pages/venues", "Venues", echo.Map{
		"areas": groupAreas(venues, upcoming),
	})
}

// SearchVenues matches search_term against venue names.
func (h *Handler) SearchVenues(c echo.Context) error {
	ctx := c.Request().Context()
	term := c.FormValue("search_term")
	venues, err := h.VenueRepo.SearchByName(ctx, term)
	if err != nil {
		return err
	}
	upcoming, err := h.ShowRepo.UpcomingByVenue(ctx, h.Now())
	if err != nil {
		return err
	}
	res := SearchResults[VenueSummary]{Count: len(venues), Data: make([]VenueSummary, 0, len(venues))}
	for _, v := range venues {
		res.Data = append(res.Data, VenueSummary{ID: v.ID, Name: v.Name, NumUpcomingShows: upcoming[v.ID]})
	}
	return h.render(c, http.StatusOK, "pages/search_venues", "Venue search", echo.Map{
		"results":     res,
		"search_term": term,
	})
}

// ShowVenue renders one venue with its past and upcoming shows.
func (h *Handler) ShowVenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	venue, err := h.VenueRepo.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, repository.ErrVenueNotFound)
	}
	shows, err := h.ShowRepo.ListByVenue(ctx, id)
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "pages/show_venue", venue.Name, echo.Map{
		"venue": newVenueDetail(venue, shows, h.Now()),
	})
}

// CreateVenueForm renders the empty venue form.
func (h *Handler) CreateVenueForm(c echo.Context) error {
	return h.render(c, http.StatusOK, "forms/new_venue", "New venue", echo.Map{
		"form": forms.VenueForm{},
	})
}

// CreateVenue stores a submitted venue and renders the home page with the
// outcome.
func (h *Handler) CreateVenue(c echo.Context) error {
	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	form := forms.BindVenue(values)
	if errs := form.Validate(); errs != nil {
		h.flashErrors(c, errs)
		return h.home(c, http.StatusOK)
	}

	venue := form.Venue()
	if err := h.VenueRepo.Create(c.Request().Context(), venue); err != nil {
		h.logger(c).WithError(err).WithField("venue", form.Name).Error("create venue failed")
		h.flash(c, flash.Danger, fmt.Sprintf("An error occurred. Venue %s could not be listed.", form.Name))
		return h.home(c, http.StatusOK)
	}

	h.publish(c, queue.ActivityEvent{Kind: queue.VenueCreated, EntityID: venue.ID, Name: venue.Name})
	h.flash(c, flash.Info, fmt.Sprintf("Venue %s was successfully listed!", venue.Name))
	return h.home(c, http.StatusOK)
}

// EditVenueForm renders the venue form filled with the stored values.
func (h *Handler) EditVenueForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	venue, err := h.VenueRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return notFoundOr(err, repository.ErrVenueNotFound)
	}
	return h.render(c, http.StatusOK, "forms/edit_venue", "Edit "+venue.Name, echo.Map{
		"form":  forms.VenueFormFrom(venue),
		"venue": newVenueView(venue),
	})
}

// EditVenue overwrites a venue with the submitted values and redirects to
// its page whatever the outcome.
func (h *Handler) EditVenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	venue, err := h.VenueRepo.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, repository.ErrVenueNotFound)
	}
	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	detail := fmt.Sprintf("/venues/%d", id)

	form := forms.BindVenue(values)
	if errs := form.Validate(); errs != nil {
		h.flashErrors(c, errs)
		h.flash(c, flash.Danger, "Editing unsuccessful!")
		return c.Redirect(http.StatusSeeOther, detail)
	}

	form.Apply(venue)
	if err := h.VenueRepo.Update(ctx, venue); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "venue not found")
		}
		h.logger(c).WithError(err).WithField("venue_id", id).Error("update venue failed")
		h.flash(c, flash.Danger, "Editing unsuccessful!")
		return c.Redirect(http.StatusSeeOther, detail)
	}

	h.publish(c, queue.ActivityEvent{Kind: queue.VenueUpdated, EntityID: venue.ID, Name: venue.Name})
	h.flash(c, flash.Info, "Editing successful!")
	return c.Redirect(http.StatusSeeOther, detail)
}

// DeleteVenue removes a venue that has no upcoming shows together with its
// past shows.
func (h *Handler) DeleteVenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		h.flash(c, flash.Danger, "Deletion unsuccessful")
		return h.home(c, http.StatusNotFound)
	}
	err = h.VenueRepo.DeleteByID(c.Request().Context(), id, h.Now())
	switch {
	case err == nil:
		h.publish(c, queue.ActivityEvent{Kind: queue.VenueDeleted, EntityID: id})
		h.flash(c, flash.Info, fmt.Sprintf("Venue with ID %d has been deleted", id))
		return h.home(c, http.StatusOK)
	case errors.Is(err, repository.ErrVenueNotFound):
		h.flash(c, flash.Danger, "Deletion unsuccessful")
		return h.home(c, http.StatusNotFound)
	case errors.Is(err, repository.ErrConflict):
		h.flash(c, flash.Danger, fmt.Sprintf("Venue %d has upcoming shows and cannot be deleted", id))
		return h.home(c, http.StatusConflict)
	default:
		h.logger(c).WithError(err).WithField("venue_id", id).Error("delete venue failed")
		h.flash(c, flash.Danger, "Deletion unsuccessful")
		return h.home(c, http.StatusInternalServerError)
	}
}

// notFoundOr turns the given not-found sentinel into a 404 and passes any
// other error through.
func notFoundOr(err, notFound error) error {
	if errors.Is(err, notFound) {
		return echo.NewHTTPError(http.StatusNotFound, notFound.Error())
	}
	return err
}

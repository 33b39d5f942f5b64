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

func (h *Handler) ListArtists(c echo.Context) error {
	ctx := c.Request().Context()
	artists, err := h.ArtistRepo.ListAll(ctx)
	if err != nil {
		return err
	}
	upcoming, err := h.ShowRepo.UpcomingByArtist(ctx, h.Now())
	if err != nil {
		return err
	}
	out := make([]ArtistSummary, 0, len(artists))
	for _, a := range artists {
		out = append(out, ArtistSummary{ID: a.ID, Name: a.Name, NumUpcomingShows: upcoming[a.ID]})
	}
	return h.render(c, http.StatusOK, "pages/artists", "Artists", echo.Map{"artists": out})
}

func (h *Handler) SearchArtists(c echo.Context) error {
	ctx := c.Request().Context()
	term := c.FormValue("search_term")
	artists, err := h.ArtistRepo.SearchByName(ctx, term)
	if err != nil {
		return err
	}
	upcoming, err := h.ShowRepo.UpcomingByArtist(ctx, h.Now())
	if err != nil {
		return err
	}
	res := SearchResults[ArtistSummary]{Count: len(artists), Data: make([]ArtistSummary, 0, len(artists))}
	for _, a := range artists {
		res.Data = append(res.Data, ArtistSummary{ID: a.ID, Name: a.Name, NumUpcomingShows: upcoming[a.ID]})
	}
	return h.render(c, http.StatusOK, "pages/search_artists", "Artist search", echo.Map{
		"results":     res,
		"search_term": term,
	})
}

func (h *Handler) ShowArtist(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	artist, err := h.ArtistRepo.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, repository.ErrArtistNotFound)
	}
	shows, err := h.ShowRepo.ListByArtist(ctx, id)
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "pages/show_artist", artist.Name, echo.Map{
		"artist": newArtistDetail(artist, shows, h.Now()),
	})
}

func (h *Handler) CreateArtistForm(c echo.Context) error {
	return h.render(c, http.StatusOK, "forms/new_artist", "New artist", echo.Map{
		"form": forms.ArtistForm{},
	})
}

func (h *Handler) CreateArtist(c echo.Context) error {
	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	form := forms.BindArtist(values)
	if errs := form.Validate(); errs != nil {
		h.flashErrors(c, errs)
		return h.home(c, http.StatusOK)
	}

	artist := form.Artist()
	if err := h.ArtistRepo.Create(c.Request().Context(), artist); err != nil {
		h.logger(c).WithError(err).WithField("artist", form.Name).Error("create artist failed")
		h.flash(c, flash.Danger, fmt.Sprintf("An error occurred. Artist %s could not be listed.", form.Name))
		return h.home(c, http.StatusOK)
	}

	h.publish(c, queue.ActivityEvent{Kind: queue.ArtistCreated, EntityID: artist.ID, Name: artist.Name})
	h.flash(c, flash.Info, fmt.Sprintf("Artist %s was successfully listed!", artist.Name))
	return h.home(c, http.StatusOK)
}

func (h *Handler) EditArtistForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	artist, err := h.ArtistRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return notFoundOr(err, repository.ErrArtistNotFound)
	}
	return h.render(c, http.StatusOK, "forms/edit_artist", "Edit "+artist.Name, echo.Map{
		"form":   forms.ArtistFormFrom(artist),
		"artist": newArtistView(artist),
	})
}

func (h *Handler) EditArtist(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	artist, err := h.ArtistRepo.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, repository.ErrArtistNotFound)
	}
	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	detail := fmt.Sprintf("/artists/%d", id)

	form := forms.BindArtist(values)
	if errs := form.Validate(); errs != nil {
		h.flashErrors(c, errs)
		h.flash(c, flash.Danger, "Editing unsuccessful!")
		return c.Redirect(http.StatusSeeOther, detail)
	}

	form.Apply(artist)
	if err := h.ArtistRepo.Update(ctx, artist); err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "artist not found")
		}
		h.logger(c).WithError(err).WithField("artist_id", id).Error("update artist failed")
		h.flash(c, flash.Danger, "Editing unsuccessful!")
		return c.Redirect(http.StatusSeeOther, detail)
	}

	h.publish(c, queue.ActivityEvent{Kind: queue.ArtistUpdated, EntityID: artist.ID, Name: artist.Name})
	h.flash(c, flash.Info, "Editing successful!")
	return c.Redirect(http.StatusSeeOther, detail)
}

package forms

import (
	"net/url"
	"strconv"
	"time"

	"github.com/iliyamo/fyyur/internal/model"
)

// ShowForm books an artist at a venue.
type ShowForm struct {
	ArtistID  string `form:"artist_id" validate:"required,number"`
	VenueID   string `form:"venue_id" validate:"required,number"`
	StartTime string `form:"start_time" validate:"required,showtime"`
}

// NewShowForm returns an empty form whose start time defaults to now.
func NewShowForm(now time.Time) ShowForm {
	return ShowForm{StartTime: now.UTC().Format("2006-01-02 15:04:05")}
}

func BindShow(values url.Values) ShowForm {
	return ShowForm{
		ArtistID:  text(values, "artist_id"),
		VenueID:   text(values, "venue_id"),
		StartTime: text(values, "start_time"),
	}
}

func (f ShowForm) Validate() ValidationErrors { return check(f) }

// Show converts a validated form into an unsaved show.
func (f ShowForm) Show() (*model.Show, error) {
	var errs ValidationErrors
	artistID, err := strconv.ParseUint(f.ArtistID, 10, 64)
	if err != nil {
		errs = append(errs, FieldError{Field: "artist_id", Message: "Not a valid integer value."})
	}
	venueID, err := strconv.ParseUint(f.VenueID, 10, 64)
	if err != nil {
		errs = append(errs, FieldError{Field: "venue_id", Message: "Not a valid integer value."})
	}
	start, err := ParseStartTime(f.StartTime)
	if err != nil {
		errs = append(errs, FieldError{Field: "start_time", Message: "Not a valid datetime value."})
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return &model.Show{ArtistID: artistID, VenueID: venueID, StartTime: model.NormalizeTime(start)}, nil
}

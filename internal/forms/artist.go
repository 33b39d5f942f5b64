package forms

import (
	"net/url"

	"github.com/iliyamo/fyyur/internal/model"
)

// ArtistForm is the create/edit form of an artist.
type ArtistForm struct {
	Name               string   `form:"name" validate:"required"`
	City               string   `form:"city" validate:"required"`
	State              string   `form:"state" validate:"required"`
	Phone              string   `form:"phone" validate:"required"`
	Genres             []string `form:"genres" validate:"min=1"`
	ImageLink          string   `form:"image_link" validate:"required"`
	FacebookLink       *string  `form:"facebook_link"`
	WebsiteLink        *string  `form:"website_link"`
	SeekingVenue       bool     `form:"seeking_venue"`
	SeekingDescription *string  `form:"seeking_description"`
}

// BindArtist reads an artist submission.
func BindArtist(values url.Values) ArtistForm {
	return ArtistForm{
		Name:               text(values, "name"),
		City:               text(values, "city"),
		State:              text(values, "state"),
		Phone:              text(values, "phone"),
		Genres:             list(values, "genres"),
		ImageLink:          text(values, "image_link"),
		FacebookLink:       optional(values, "facebook_link"),
		WebsiteLink:        optional(values, "website_link"),
		SeekingVenue:       checked(values, "seeking_venue"),
		SeekingDescription: optional(values, "seeking_description"),
	}
}

// ArtistFormFrom pre-populates the edit form.
func ArtistFormFrom(a *model.Artist) ArtistForm {
	return ArtistForm{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		Genres:             append([]string{}, a.Genres...),
		ImageLink:          a.ImageLink,
		FacebookLink:       clone(a.FacebookLink),
		WebsiteLink:        clone(a.WebsiteLink),
		SeekingVenue:       a.LookingForVenues,
		SeekingDescription: clone(a.SeekingDescription),
	}
}

func (f ArtistForm) Validate() ValidationErrors { return check(f) }

// Apply overwrites every editable field of a with the form values.
func (f ArtistForm) Apply(a *model.Artist) {
	a.Name = f.Name
	a.City = f.City
	a.State = f.State
	a.Phone = f.Phone
	a.Genres = model.Genres(append([]string{}, f.Genres...))
	a.ImageLink = f.ImageLink
	a.FacebookLink = clone(f.FacebookLink)
	a.WebsiteLink = clone(f.WebsiteLink)
	a.LookingForVenues = f.SeekingVenue
	a.SeekingDescription = clone(f.SeekingDescription)
}

func (f ArtistForm) Artist() *model.Artist {
	a := &model.Artist{}
	f.Apply(a)
	return a
}

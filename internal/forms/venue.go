package forms

import (
	"net/url"

	"github.com/iliyamo/fyyur/internal/model"
)

// VenueForm is the create/edit form of a venue.
type VenueForm struct {
	Name               string   `form:"name" validate:"required"`
	City               string   `form:"city" validate:"required"`
	State              string   `form:"state" validate:"required"`
	Address            string   `form:"address" validate:"required"`
	Phone              string   `form:"phone" validate:"required"`
	Genres             []string `form:"genres" validate:"min=1"`
	ImageLink          string   `form:"image_link" validate:"required"`
	FacebookLink       *string  `form:"facebook_link"`
	WebsiteLink        *string  `form:"website_link"`
	SeekingTalent      bool     `form:"seeking_talent"`
	SeekingDescription *string  `form:"seeking_description"`
}

// BindVenue reads a venue submission. Genres come from every submitted
// value of the multi-select.
func BindVenue(values url.Values) VenueForm {
	return VenueForm{
		Name:               text(values, "name"),
		City:               text(values, "city"),
		State:              text(values, "state"),
		Address:            text(values, "address"),
		Phone:              text(values, "phone"),
		Genres:             list(values, "genres"),
		ImageLink:          text(values, "image_link"),
		FacebookLink:       optional(values, "facebook_link"),
		WebsiteLink:        optional(values, "website_link"),
		SeekingTalent:      checked(values, "seeking_talent"),
		SeekingDescription: optional(values, "seeking_description"),
	}
}

// VenueFormFrom pre-populates the edit form with the stored values.
func VenueFormFrom(v *model.Venue) VenueForm {
	return VenueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		Genres:             append([]string{}, v.Genres...),
		ImageLink:          v.ImageLink,
		FacebookLink:       clone(v.FacebookLink),
		WebsiteLink:        clone(v.WebsiteLink),
		SeekingTalent:      v.LookingForTalent,
		SeekingDescription: clone(v.SeekingDescription),
	}
}

// Validate returns nil or the failed checks.
func (f VenueForm) Validate() ValidationErrors { return check(f) }

// Apply overwrites every editable field of v with the form values.
func (f VenueForm) Apply(v *model.Venue) {
	v.Name = f.Name
	v.City = f.City
	v.State = f.State
	v.Address = f.Address
	v.Phone = f.Phone
	v.Genres = model.Genres(append([]string{}, f.Genres...))
	v.ImageLink = f.ImageLink
	v.FacebookLink = clone(f.FacebookLink)
	v.WebsiteLink = clone(f.WebsiteLink)
	v.LookingForTalent = f.SeekingTalent
	v.SeekingDescription = clone(f.SeekingDescription)
}

// Venue builds a new, unsaved venue from the form.
func (f VenueForm) Venue() *model.Venue {
	v := &model.Venue{}
	f.Apply(v)
	return v
}

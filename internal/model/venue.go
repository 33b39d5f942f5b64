package model

// Venue is a place that hosts shows. It corresponds to a row in the
// `venues` table.
//
// Optional links and the seeking description are pointers so that a value
// that was never supplied (NULL) stays distinguishable from an empty one.
type Venue struct {
	ID                 uint64  // venues.id
	Name               string  // venues.name
	City               string  // venues.city
	State              string  // venues.state
	Address            string  // venues.address
	Phone              string  // venues.phone
	Genres             Genres  // venues.genres (JSON array)
	ImageLink          string  // venues.image_link
	FacebookLink       *string // venues.facebook_link
	WebsiteLink        *string // venues.website_link
	LookingForTalent   bool    // venues.looking_for_talent
	SeekingDescription *string // venues.seeking_description
}

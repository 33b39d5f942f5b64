package model

// Artist is a performer that can be booked at venues. Artists have no
// street address; otherwise the shape mirrors Venue.
type Artist struct {
	ID                 uint64  // artists.id
	Name               string  // artists.name
	City               string  // artists.city
	State              string  // artists.state
	Phone              string  // artists.phone
	Genres             Genres  // artists.genres (JSON array)
	ImageLink          string  // artists.image_link
	FacebookLink       *string // artists.facebook_link
	WebsiteLink        *string // artists.website_link
	LookingForVenues   bool    // artists.looking_for_venues
	SeekingDescription *string // artists.seeking_description
}

package model

import "time"

// Show is a booking of one artist at one venue at a point in time. Both
// references are required and must point at existing rows.
//
// Fields:
//
//	ID        – primary key identifier.
//	ArtistID  – the performing artist.
//	VenueID   – the hosting venue.
//	StartTime – when the show begins, stored in UTC at second precision.
type Show struct {
	ID        uint64    // shows.id
	ArtistID  uint64    // shows.artist_id
	VenueID   uint64    // shows.venue_id
	StartTime time.Time // shows.start_time
}

// ShowListing is a show joined with the display fields of its artist and
// venue. It is what list and detail pages work with.
type ShowListing struct {
	ID              uint64
	StartTime       time.Time
	VenueID         uint64
	VenueName       string
	VenueImageLink  string
	ArtistID        uint64
	ArtistName      string
	ArtistImageLink string
}

// NormalizeTime converts t to the stored representation of a show time.
func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

// IsPast reports whether the show started strictly before now.
func (s ShowListing) IsPast(now time.Time) bool { return s.StartTime.Before(now) }

// IsUpcoming reports whether the show starts strictly after now.
func (s ShowListing) IsUpcoming(now time.Time) bool { return s.StartTime.After(now) }

// PartitionShows splits shows into past and upcoming relative to now,
// keeping the input order in both halves. A show starting exactly at now
// belongs to neither.
func PartitionShows(shows []ShowListing, now time.Time) (past, upcoming []ShowListing) {
	past = []ShowListing{}
	upcoming = []ShowListing{}
	for _, s := range shows {
		switch {
		case s.IsPast(now):
			past = append(past, s)
		case s.IsUpcoming(now):
			upcoming = append(upcoming, s)
		}
	}
	return past, upcoming
}

// CountUpcoming returns how many of the given start times lie after now.
func CountUpcoming(starts []time.Time, now time.Time) int {
	n := 0
	for _, t := range starts {
		if t.After(now) {
			n++
		}
	}
	return n
}

package handler

import (
	"time"

	"github.com/iliyamo/fyyur/internal/model"
)

// viewTimeLayout is how show times are handed to templates.
const viewTimeLayout = "2006-01-02 15:04:05"

// VenueSummary is a venue entry in listings and search results.
type VenueSummary struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// Area groups the venues of one city.
type Area struct {
	City   string         `json:"city"`
	State  string         `json:"state"`
	Venues []VenueSummary `json:"venues"`
}

// ArtistSummary is an artist entry in listings and search results.
type ArtistSummary struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// SearchResults is the outcome of a name search.
type SearchResults[T any] struct {
	Count int `json:"count"`
	Data  []T `json:"data"`
}

// VenueView is the plain view of a venue's stored values.
type VenueView struct {
	ID                 uint64   `json:"id"`
	Name               string   `json:"name"`
	Genres             []string `json:"genres"`
	Address            string   `json:"address"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Phone              string   `json:"phone"`
	Website            *string  `json:"website"`
	FacebookLink       *string  `json:"facebook_link"`
	SeekingTalent      bool     `json:"seeking_talent"`
	SeekingDescription *string  `json:"seeking_description"`
	ImageLink          string   `json:"image_link"`
}

// VenueShow is a show as listed on a venue page.
type VenueShow struct {
	ArtistID        uint64 `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	StartTime       string `json:"start_time"`
}

// VenueDetail is the venue page.
type VenueDetail struct {
	VenueView
	PastShows          []VenueShow `json:"past_shows"`
	UpcomingShows      []VenueShow `json:"upcoming_shows"`
	PastShowsCount     int         `json:"past_shows_count"`
	UpcomingShowsCount int         `json:"upcoming_shows_count"`
}

// ArtistView is the plain view of an artist's stored values.
type ArtistView struct {
	ID                 uint64   `json:"id"`
	Name               string   `json:"name"`
	Genres             []string `json:"genres"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Phone              string   `json:"phone"`
	Website            *string  `json:"website"`
	FacebookLink       *string  `json:"facebook_link"`
	SeekingVenue       bool     `json:"seeking_venue"`
	SeekingDescription *string  `json:"seeking_description"`
	ImageLink          string   `json:"image_link"`
}

// ArtistShow is a show as listed on an artist page.
type ArtistShow struct {
	VenueID        uint64 `json:"venue_id"`
	VenueName      string `json:"venue_name"`
	VenueImageLink string `json:"venue_image_link"`
	StartTime      string `json:"start_time"`
}

// ArtistDetail is the artist page.
type ArtistDetail struct {
	ArtistView
	PastShows          []ArtistShow `json:"past_shows"`
	UpcomingShows      []ArtistShow `json:"upcoming_shows"`
	PastShowsCount     int          `json:"past_shows_count"`
	UpcomingShowsCount int          `json:"upcoming_shows_count"`
}

// ShowRow is one line of the shows page.
type ShowRow struct {
	VenueID         uint64 `json:"venue_id"`
	VenueName       string `json:"venue_name"`
	ArtistID        uint64 `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	StartTime       string `json:"start_time"`
}

func formatShowTime(t time.Time) string {
	return t.UTC().Format(viewTimeLayout)
}

func newVenueView(v *model.Venue) VenueView {
	return VenueView{
		ID:                 v.ID,
		Name:               v.Name,
		Genres:             append([]string{}, v.Genres...),
		Address:            v.Address,
		City:               v.City,
		State:              v.State,
		Phone:              v.Phone,
		Website:            v.WebsiteLink,
		FacebookLink:       v.FacebookLink,
		SeekingTalent:      v.LookingForTalent,
		SeekingDescription: v.SeekingDescription,
		ImageLink:          v.ImageLink,
	}
}

func venueShows(in []model.ShowListing) []VenueShow {
	out := make([]VenueShow, 0, len(in))
	for _, s := range in {
		out = append(out, VenueShow{
			ArtistID:        s.ArtistID,
			ArtistName:      s.ArtistName,
			ArtistImageLink: s.ArtistImageLink,
			StartTime:       formatShowTime(s.StartTime),
		})
	}
	return out
}

func newVenueDetail(v *model.Venue, shows []model.ShowListing, now time.Time) VenueDetail {
	past, upcoming := model.PartitionShows(shows, now)
	return VenueDetail{
		VenueView:          newVenueView(v),
		PastShows:          venueShows(past),
		UpcomingShows:      venueShows(upcoming),
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}
}

func newArtistView(a *model.Artist) ArtistView {
	return ArtistView{
		ID:                 a.ID,
		Name:               a.Name,
		Genres:             append([]string{}, a.Genres...),
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		Website:            a.WebsiteLink,
		FacebookLink:       a.FacebookLink,
		SeekingVenue:       a.LookingForVenues,
		SeekingDescription: a.SeekingDescription,
		ImageLink:          a.ImageLink,
	}
}

func artistShows(in []model.ShowListing) []ArtistShow {
	out := make([]ArtistShow, 0, len(in))
	for _, s := range in {
		out = append(out, ArtistShow{
			VenueID:        s.VenueID,
			VenueName:      s.VenueName,
			VenueImageLink: s.VenueImageLink,
			StartTime:      formatShowTime(s.StartTime),
		})
	}
	return out
}

func newArtistDetail(a *model.Artist, shows []model.ShowListing, now time.Time) ArtistDetail {
	past, upcoming := model.PartitionShows(shows, now)
	return ArtistDetail{
		ArtistView:         newArtistView(a),
		PastShows:          artistShows(past),
		UpcomingShows:      artistShows(upcoming),
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}
}

// groupAreas folds venues ordered by state and city into areas, keeping
// first-seen order.
func groupAreas(venues []*model.Venue, upcoming map[uint64]int) []Area {
	areas := []Area{}
	index := map[[2]string]int{}
	for _, v := range venues {
		key := [2]string{v.City, v.State}
		i, ok := index[key]
		if !ok {
			areas = append(areas, Area{City: v.City, State: v.State, Venues: []VenueSummary{}})
			i = len(areas) - 1
			index[key] = i
		}
		areas[i].Venues = append(areas[i].Venues, VenueSummary{ID: v.ID, Name: v.Name, NumUpcomingShows: upcoming[v.ID]})
	}
	return areas
}

func newShowRows(in []model.ShowListing) []ShowRow {
	out := make([]ShowRow, 0, len(in))
	for _, s := range in {
		out = append(out, ShowRow{
			VenueID:         s.VenueID,
			VenueName:       s.VenueName,
			ArtistID:        s.ArtistID,
			ArtistName:      s.ArtistName,
			ArtistImageLink: s.ArtistImageLink,
			StartTime:       formatShowTime(s.StartTime),
		})
	}
	return out
}

package forms

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/model"
)

func hopValues() url.Values {
	return url.Values{
		"name":                {"The Musical Hop"},
		"city":                {"San Francisco"},
		"state":               {"CA"},
		"address":             {"1015 Folsom Street"},
		"phone":               {"123-123-1234"},
		"genres":              {"Jazz", "Reggae", "Swing"},
		"image_link":          {"https://images.example.com/hop.jpg"},
		"facebook_link":       {""},
		"seeking_talent":      {"y"},
		"seeking_description": {"Looking for a local artist"},
	}
}

func TestBindVenue(t *testing.T) {
	f := BindVenue(hopValues())

	assert.Equal(t, "The Musical Hop", f.Name)
	assert.Equal(t, []string{"Jazz", "Reggae", "Swing"}, f.Genres)
	assert.True(t, f.SeekingTalent)
	require.NotNil(t, f.FacebookLink)
	assert.Equal(t, "", *f.FacebookLink)
	assert.Nil(t, f.WebsiteLink)
	require.NotNil(t, f.SeekingDescription)
	assert.Equal(t, "Looking for a local artist", *f.SeekingDescription)
	assert.Nil(t, f.Validate())

	v := f.Venue()
	assert.Equal(t, model.Genres{"Jazz", "Reggae", "Swing"}, v.Genres)
	assert.True(t, v.LookingForTalent)
	assert.Nil(t, v.WebsiteLink)
}

func TestBindVenueUncheckedBox(t *testing.T) {
	values := hopValues()
	values.Del("seeking_talent")
	assert.False(t, BindVenue(values).SeekingTalent)

	values.Set("seeking_talent", "n")
	assert.False(t, BindVenue(values).SeekingTalent)
}

func TestVenueValidationErrors(t *testing.T) {
	values := hopValues()
	values.Set("name", "   ")
	values.Del("genres")
	values.Del("image_link")

	errs := BindVenue(values).Validate()
	require.Len(t, errs, 3)
	assert.Equal(t, []string{
		"name-This field is required.",
		"genres-Select at least one option.",
		"image_link-This field is required.",
	}, errs.Messages())
	assert.Contains(t, errs.Error(), "name-This field is required.")
}

func TestVenueFormFromAndApply(t *testing.T) {
	fb := "https://www.facebook.com/TheMusicalHop"
	v := &model.Venue{
		ID: 7, Name: "The Musical Hop", City: "San Francisco", State: "CA", Address: "1015 Folsom Street",
		Phone: "123-123-1234", Genres: model.Genres{"Jazz"}, ImageLink: "img", FacebookLink: &fb,
		LookingForTalent: true,
	}
	f := VenueFormFrom(v)
	assert.Equal(t, "The Musical Hop", f.Name)
	assert.True(t, f.SeekingTalent)
	require.NotNil(t, f.FacebookLink)

	f.Name = "Hop Two"
	f.FacebookLink = nil
	f.Apply(v)
	assert.Equal(t, uint64(7), v.ID)
	assert.Equal(t, "Hop Two", v.Name)
	assert.Nil(t, v.FacebookLink)
	assert.Equal(t, "https://www.facebook.com/TheMusicalHop", fb)
}

func TestBindArtist(t *testing.T) {
	values := url.Values{
		"name":          {"Guns N Petals"},
		"city":          {"San Francisco"},
		"state":         {"CA"},
		"phone":         {"326-123-5000"},
		"genres":        {"Rock n Roll", ""},
		"image_link":    {"https://images.example.com/gnp.jpg"},
		"website_link":  {"https://www.gunsnpetalsband.com"},
		"seeking_venue": {"on"},
	}
	f := BindArtist(values)
	assert.Nil(t, f.Validate())
	assert.Equal(t, []string{"Rock n Roll"}, f.Genres)

	a := f.Artist()
	assert.True(t, a.LookingForVenues)
	assert.Nil(t, a.FacebookLink)
	require.NotNil(t, a.WebsiteLink)
	assert.Equal(t, "https://www.gunsnpetalsband.com", *a.WebsiteLink)

	back := ArtistFormFrom(a)
	assert.Equal(t, f, back)
}

func TestArtistValidationErrors(t *testing.T) {
	errs := BindArtist(url.Values{}).Validate()
	assert.Equal(t, []string{
		"name-This field is required.",
		"city-This field is required.",
		"state-This field is required.",
		"phone-This field is required.",
		"genres-Select at least one option.",
		"image_link-This field is required.",
	}, errs.Messages())
}

func TestParseStartTime(t *testing.T) {
	want := time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)
	for _, in := range []string{
		"2035-04-01 20:00:00",
		"2035-04-01 20:00",
		"2035-04-01T20:00",
		"2035-04-01T20:00:00",
		"2035-04-01T20:00:00Z",
		"2035-04-01T22:00:00+02:00",
		"  2035-04-01 20:00:00 ",
	} {
		got, err := ParseStartTime(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), in)
		assert.Equal(t, time.UTC, got.Location(), in)
	}

	_, err := ParseStartTime("next tuesday")
	assert.Error(t, err)
}

func TestShowForm(t *testing.T) {
	f := BindShow(url.Values{
		"artist_id":  {"4"},
		"venue_id":   {"1"},
		"start_time": {"2019-05-21T21:30"},
	})
	require.Nil(t, f.Validate())

	s, err := f.Show()
	require.NoError(t, err)
	assert.Equal(t, uint64(4), s.ArtistID)
	assert.Equal(t, uint64(1), s.VenueID)
	assert.Equal(t, time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC), s.StartTime)
}

func TestShowFormValidation(t *testing.T) {
	f := BindShow(url.Values{
		"artist_id":  {"abc"},
		"start_time": {"soon"},
	})
	assert.Equal(t, []string{
		"artist_id-Not a valid integer value.",
		"venue_id-This field is required.",
		"start_time-Not a valid datetime value.",
	}, f.Validate().Messages())

	_, err := f.Show()
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 3)
}

func TestNewShowForm(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 5, 0, 0, time.UTC)
	assert.Equal(t, "2026-10-17 09:05:00", NewShowForm(now).StartTime)
}

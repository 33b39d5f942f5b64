// Package repository contains data access logic for shows. A show links one
// artist to one venue at a start time; listings join in the display fields
// of both sides.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/fyyur/internal/database"
	"github.com/iliyamo/fyyur/internal/model"
)

const showListingQuery = `SELECT s.id, s.start_time, v.id, v.name, v.image_link, a.id, a.name, a.image_link
	FROM shows s
	JOIN venues v ON v.id = s.venue_id
	JOIN artists a ON a.id = s.artist_id`

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// Create inserts a show. StartTime is normalised to UTC seconds before it
// is written. If the artist or venue does not exist ErrReference is
// returned and nothing is stored.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	const q = `INSERT INTO shows (artist_id, venue_id, start_time) VALUES (?, ?, ?)`
	s.StartTime = model.NormalizeTime(s.StartTime)
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, q, s.ArtistID, s.VenueID, s.StartTime)
		if err != nil {
			if database.IsForeignKeyViolation(err) {
				return ErrReference
			}
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		s.ID = uint64(id)
		return nil
	})
}

// ListAll returns every show joined with its venue and artist, ordered by
// start time.
func (r *ShowRepo) ListAll(ctx context.Context) ([]model.ShowListing, error) {
	return r.list(ctx, showListingQuery+" ORDER BY s.start_time, s.id")
}

// ListByVenue returns the shows hosted by a venue ordered by start time.
func (r *ShowRepo) ListByVenue(ctx context.Context, venueID uint64) ([]model.ShowListing, error) {
	return r.list(ctx, showListingQuery+" WHERE s.venue_id = ? ORDER BY s.start_time, s.id", venueID)
}

// ListByArtist returns the shows an artist plays ordered by start time.
func (r *ShowRepo) ListByArtist(ctx context.Context, artistID uint64) ([]model.ShowListing, error) {
	return r.list(ctx, showListingQuery+" WHERE s.artist_id = ? ORDER BY s.start_time, s.id", artistID)
}

// UpcomingByVenue counts, per venue id, the shows starting after now.
// Venues without upcoming shows are absent from the map.
func (r *ShowRepo) UpcomingByVenue(ctx context.Context, now time.Time) (map[uint64]int, error) {
	return r.countUpcoming(ctx, `SELECT venue_id, start_time FROM shows`, now)
}

// UpcomingByArtist counts, per artist id, the shows starting after now.
func (r *ShowRepo) UpcomingByArtist(ctx context.Context, now time.Time) (map[uint64]int, error) {
	return r.countUpcoming(ctx, `SELECT artist_id, start_time FROM shows`, now)
}

func (r *ShowRepo) countUpcoming(ctx context.Context, q string, now time.Time) (map[uint64]int, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[uint64]int{}
	for rows.Next() {
		var (
			id    uint64
			start time.Time
		)
		if err := rows.Scan(&id, &start); err != nil {
			return nil, err
		}
		if start.After(now) {
			out[id]++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ShowRepo) list(ctx context.Context, q string, args ...interface{}) ([]model.ShowListing, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ShowListing{}
	for rows.Next() {
		var s model.ShowListing
		if err := rows.Scan(&s.ID, &s.StartTime, &s.VenueID, &s.VenueName, &s.VenueImageLink,
			&s.ArtistID, &s.ArtistName, &s.ArtistImageLink); err != nil {
			return nil, err
		}
		s.StartTime = s.StartTime.UTC()
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

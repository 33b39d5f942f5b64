// Package repository contains data access logic separated from HTTP handlers.
// This file defines repository methods for venues: create, lookup, listing,
// name search, full-record update and guarded deletion.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/fyyur/internal/model"
)

const venueColumns = `id, name, city, state, address, phone, genres, image_link,
	facebook_link, website_link, looking_for_talent, seeking_description`

// VenueRepo encapsulates all database queries related to venues.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

// DB exposes the underlying pool, mainly for health checks.
func (r *VenueRepo) DB() *sql.DB {
	return r.db
}

func scanVenue(s rowScanner) (*model.Venue, error) {
	var (
		v                    model.Venue
		fb, web, seekingDesc sql.NullString
	)
	if err := s.Scan(&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone, &v.Genres,
		&v.ImageLink, &fb, &web, &v.LookingForTalent, &seekingDesc); err != nil {
		return nil, err
	}
	v.FacebookLink = stringPtr(fb)
	v.WebsiteLink = stringPtr(web)
	v.SeekingDescription = stringPtr(seekingDesc)
	return &v, nil
}

// Create inserts a new venue inside a transaction. On success the venue's
// ID field is populated with the generated value.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	const q = `INSERT INTO venues (name, city, state, address, phone, genres, image_link,
	           facebook_link, website_link, looking_for_talent, seeking_description)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, q, v.Name, v.City, v.State, v.Address, v.Phone, v.Genres,
			v.ImageLink, nullString(v.FacebookLink), nullString(v.WebsiteLink), v.LookingForTalent,
			nullString(v.SeekingDescription))
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		v.ID = uint64(id)
		return nil
	})
}

// GetByID fetches a venue by id. It returns ErrVenueNotFound if no row
// matches.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	q := "SELECT " + venueColumns + " FROM venues WHERE id = ?"
	v, err := scanVenue(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return v, nil
}

// ListAll returns every venue ordered by state, city and id so callers can
// group consecutive rows into areas.
func (r *VenueRepo) ListAll(ctx context.Context) ([]*model.Venue, error) {
	q := "SELECT " + venueColumns + " FROM venues ORDER BY state, city, id"
	return r.list(ctx, q)
}

// SearchByName returns venues whose name contains term, ignoring case.
// An empty term matches every venue.
func (r *VenueRepo) SearchByName(ctx context.Context, term string) ([]*model.Venue, error) {
	q := "SELECT " + venueColumns + " FROM venues WHERE " + nameContains + " ORDER BY id"
	return r.list(ctx, q, containsPattern(term))
}

func (r *VenueRepo) list(ctx context.Context, q string, args ...interface{}) ([]*model.Venue, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Venue{}
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites every editable column of the venue identified by v.ID.
// It returns ErrVenueNotFound when the venue does not exist.
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue) error {
	const q = `UPDATE venues
	           SET name = ?, city = ?, state = ?, address = ?, phone = ?, genres = ?, image_link = ?,
	               facebook_link = ?, website_link = ?, looking_for_talent = ?, seeking_description = ?
	           WHERE id = ?`
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		ok, err := existsTx(ctx, tx, "venues", v.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrVenueNotFound
		}
		_, err = tx.ExecContext(ctx, q, v.Name, v.City, v.State, v.Address, v.Phone, v.Genres, v.ImageLink,
			nullString(v.FacebookLink), nullString(v.WebsiteLink), v.LookingForTalent,
			nullString(v.SeekingDescription), v.ID)
		return err
	})
}

// DeleteByID removes a venue. A venue that still has shows starting after
// now is not deleted and ErrConflict is returned. Otherwise its past shows
// are removed together with the venue in a single transaction. A missing
// venue yields ErrVenueNotFound.
func (r *VenueRepo) DeleteByID(ctx context.Context, id uint64, now time.Time) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		ok, err := existsTx(ctx, tx, "venues", id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrVenueNotFound
		}

		rows, err := tx.QueryContext(ctx, `SELECT start_time FROM shows WHERE venue_id = ?`, id)
		if err != nil {
			return err
		}
		var starts []time.Time
		for rows.Next() {
			var t time.Time
			if err := rows.Scan(&t); err != nil {
				rows.Close()
				return err
			}
			starts = append(starts, t)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return err
		}
		rows.Close()

		if model.CountUpcoming(starts, now) > 0 {
			return ErrConflict
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM shows WHERE venue_id = ?`, id); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id)
		return err
	})
}

package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/fyyur/internal/model"
)

const artistColumns = `id, name, city, state, phone, genres, image_link,
	facebook_link, website_link, looking_for_venues, seeking_description`

// ArtistRepo manages persistence for artists.
type ArtistRepo struct {
	db *sql.DB
}

// NewArtistRepo constructs an ArtistRepo.
func NewArtistRepo(db *sql.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

func scanArtist(s rowScanner) (*model.Artist, error) {
	var (
		a                    model.Artist
		fb, web, seekingDesc sql.NullString
	)
	if err := s.Scan(&a.ID, &a.Name, &a.City, &a.State, &a.Phone, &a.Genres, &a.ImageLink,
		&fb, &web, &a.LookingForVenues, &seekingDesc); err != nil {
		return nil, err
	}
	a.FacebookLink = stringPtr(fb)
	a.WebsiteLink = stringPtr(web)
	a.SeekingDescription = stringPtr(seekingDesc)
	return &a, nil
}

// Create inserts a new artist and populates a.ID.
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist) error {
	const q = `INSERT INTO artists (name, city, state, phone, genres, image_link,
	           facebook_link, website_link, looking_for_venues, seeking_description)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, q, a.Name, a.City, a.State, a.Phone, a.Genres, a.ImageLink,
			nullString(a.FacebookLink), nullString(a.WebsiteLink), a.LookingForVenues,
			nullString(a.SeekingDescription))
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		a.ID = uint64(id)
		return nil
	})
}

// GetByID fetches an artist by id or returns ErrArtistNotFound.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*model.Artist, error) {
	q := "SELECT " + artistColumns + " FROM artists WHERE id = ?"
	a, err := scanArtist(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	return a, nil
}

// ListAll returns all artists ordered by id.
func (r *ArtistRepo) ListAll(ctx context.Context) ([]*model.Artist, error) {
	return r.list(ctx, "SELECT "+artistColumns+" FROM artists ORDER BY id")
}

// SearchByName returns artists whose name contains term, ignoring case.
func (r *ArtistRepo) SearchByName(ctx context.Context, term string) ([]*model.Artist, error) {
	q := "SELECT " + artistColumns + " FROM artists WHERE " + nameContains + " ORDER BY id"
	return r.list(ctx, q, containsPattern(term))
}

func (r *ArtistRepo) list(ctx context.Context, q string, args ...interface{}) ([]*model.Artist, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Artist{}
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites the artist identified by a.ID. It returns
// ErrArtistNotFound when the artist does not exist.
func (r *ArtistRepo) Update(ctx context.Context, a *model.Artist) error {
	const q = `UPDATE artists
	           SET name = ?, city = ?, state = ?, phone = ?, genres = ?, image_link = ?,
	               facebook_link = ?, website_link = ?, looking_for_venues = ?, seeking_description = ?
	           WHERE id = ?`
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		ok, err := existsTx(ctx, tx, "artists", a.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrArtistNotFound
		}
		_, err = tx.ExecContext(ctx, q, a.Name, a.City, a.State, a.Phone, a.Genres, a.ImageLink,
			nullString(a.FacebookLink), nullString(a.WebsiteLink), a.LookingForVenues,
			nullString(a.SeekingDescription), a.ID)
		return err
	})
}

// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow handlers to tell a missing
// record apart from a rejected write without inspecting driver errors.
package repository

import "errors"

var (
	// ErrVenueNotFound is returned when no venue has the requested id.
	ErrVenueNotFound = errors.New("venue not found")
	// ErrArtistNotFound is returned when no artist has the requested id.
	ErrArtistNotFound = errors.New("artist not found")
)

// ErrConflict is returned when a delete cannot be performed because of
// dependent state, such as a venue that still has upcoming shows.
// Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrReference is returned when a write names an artist or venue that
// does not exist.
var ErrReference = errors.New("referenced record does not exist")

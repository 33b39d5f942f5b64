// Package queue defines message payloads exchanged over the message broker
// and the consumer that records them.
package queue

import "time"

// ActivityQueue is the durable queue activity events are published to.
const ActivityQueue = "fyyur.activity"

// Event kinds.
const (
	VenueCreated  = "venue.created"
	VenueUpdated  = "venue.updated"
	VenueDeleted  = "venue.deleted"
	ArtistCreated = "artist.created"
	ArtistUpdated = "artist.updated"
	ShowCreated   = "show.created"
)

// ActivityEvent is published after a listing changes. It carries enough
// for downstream consumers to log or notify without querying the
// database.
type ActivityEvent struct {
	Kind       string    `json:"kind"`
	EntityID   uint64    `json:"entity_id"`
	Name       string    `json:"name,omitempty"`
	ArtistID   uint64    `json:"artist_id,omitempty"`
	VenueID    uint64    `json:"venue_id,omitempty"`
	StartTime  string    `json:"start_time,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

package utils

import (
	"github.com/google/uuid"
)

var newUUIDv7 = uuid.NewV7

// GenerateUUIDv7 returns a time-ordered UUID. Row IDs use v7 so the
// append-only pool_events table stays roughly insertion-ordered on disk.
func GenerateUUIDv7() uuid.UUID {
	id, err := newUUIDv7()
	if err != nil {
		// Fallback to v4 if v7 fails (highly unlikely)
		return uuid.New()
	}
	return id
}

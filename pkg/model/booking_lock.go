package model

import "time"

// BookingLock is an advisory lock document guarding the conflict-check/insert
// pair for one slot. The _id encodes the slot coordinates, so a duplicate-key
// error means another request holds the slot; a TTL index on expires_at
// reclaims locks from crashed requests.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

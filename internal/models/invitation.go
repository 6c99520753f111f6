package models

import "time"

// Invitation is a capability object: whoever holds the token may claim
// the pending membership created alongside it.
type Invitation struct {
	ID        int       `json:"id"`
	Token     string    `json:"token"`
	UserID    *int      `json:"userId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

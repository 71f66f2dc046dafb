// Package id mints identifiers for events and traces.
package id

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// NewID32 returns a time-ordered UUIDv7 as 32 lowercase hex characters, so
// ids sort by creation time when consumers store them.
func NewID32() string {
	u, err := uuid.NewV7()
	if err != nil {
		u = uuid.New()
	}
	return hex.EncodeToString(u[:])
}

package types

import "time"

// Profile is an identity node. It owns at most one linklist and a note
// namespace. Profiles are created once and never deleted; ownership
// transfer is handled outside this core.
type Profile struct {
	ProfileID uint64 // Monotonically assigned, starting at 1.
	Owner     Address
	Handle    string
	URI       string

	// NextNoteID is the note id the profile's next post receives.
	// Starts at 1 and only ever increases; ids are never reassigned,
	// even after a note is marked deleted.
	NextNoteID uint64

	CreatedAt time.Time
}

// Linklist is the per-category, ordered collection of link items owned by
// exactly one profile. It is created lazily on the profile's first link
// operation and its owning profile never changes.
type Linklist struct {
	LinklistID uint64
	ProfileID  uint64
	CreatedAt  time.Time
}

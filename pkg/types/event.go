package types

import "time"

// Event names emitted by the engine, one per committed mutation.
const (
	EventProfileCreated = "ProfileCreated"
	EventLinkCreated    = "LinkCreated"
	EventLinkRemoved    = "LinkRemoved"
	EventNotePosted     = "NotePosted"
	EventNoteDeleted    = "NoteDeleted"
	EventNoteURISet     = "NoteURISet"
	EventNoteMinted     = "NoteMinted"
)

// Event is a structured record of a committed mutation, written in the same
// transaction as the mutation itself: a failed operation emits nothing.
// Events exist for off-system indexers (at-least-once) and never feed back
// into ledger correctness. Fields irrelevant to an event's name are zero.
type Event struct {
	Seq        uint64    `json:"seq"`
	Name       string    `json:"name"`
	Caller     Address   `json:"caller,omitempty"`
	ProfileID  uint64    `json:"profile_id,omitempty"`
	NoteID     uint64    `json:"note_id,omitempty"`
	LinklistID uint64    `json:"linklist_id,omitempty"`
	Category   string    `json:"category,omitempty"`
	LinkKey    string    `json:"link_key,omitempty"`
	NFT        Address   `json:"nft,omitempty"`
	TokenID    uint64    `json:"token_id,omitempty"`
	To         Address   `json:"to,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

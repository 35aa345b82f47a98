package types

import "time"

// Note is a content record scoped to a profile. A note may be bound to a
// link item at creation time; the binding is structural only and is never
// re-validated if the item is later removed.
type Note struct {
	ProfileID uint64
	NoteID    uint64 // Per-profile counter starting at 1, never reused.

	// Link binding. LinkItemType is empty for a note attached to the bare
	// profile; otherwise LinklistID names the linklist the item lives in
	// and LinkKey is the item's encoded identity.
	LinkItemType string
	LinklistID   uint64
	LinkKey      string

	ContentURI string

	// Module bindings, fixed at post time.
	LinkModule     Address
	LinkModuleData string
	MintModule     Address
	MintModuleData string

	// MintNFT is the address of the lazily deployed issuance contract.
	// AddressZero until the first successful mint, set exactly once and
	// immutable afterwards.
	MintNFT Address

	// Deleted marks a tombstoned note. The note id and any already minted
	// tokens stay valid after deletion.
	Deleted bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PostNoteData carries the caller-supplied fields of a postNote operation.
type PostNoteData struct {
	ProfileID      uint64
	ContentURI     string
	LinkModule     Address
	LinkModuleData string
	MintModule     Address
	MintModuleData string
}

// MintNFT is a lazily deployed per-note issuance contract instance. Token
// ids are assigned sequentially starting at 1, in mint-call order.
type MintNFT struct {
	Address     Address
	ProfileID   uint64
	NoteID      uint64
	NextTokenID uint64
	CreatedAt   time.Time
}

package types

// LinkModule is an externally supplied hook consulted during link and post
// operations. Implementations are registered with the engine under an
// opaque address and invoked synchronously; they decide accept or reject
// through their return value only and must not mutate ledger state.
type LinkModule interface {
	// InitializeLinkModule runs when a note binds this module at post time.
	// A non-nil error aborts the post.
	InitializeLinkModule(profileID, noteID uint64, data string) error

	// ProcessLink runs after a link has been provisionally recorded for a
	// category bound to this module. A non-nil error rolls the whole link
	// operation back and is surfaced to the caller unchanged.
	ProcessLink(caller Address, fromProfileID uint64, item LinkItem, data string) error
}

// MintModule is an externally supplied hook gating note mints.
type MintModule interface {
	// InitializeMintModule runs when a note binds this module at post time.
	// A non-nil error aborts the post.
	InitializeMintModule(profileID, noteID uint64, data string) error

	// ProcessMint runs before any mint side effect. A non-nil error aborts
	// the mint with no issuance contract deployed and no token minted.
	ProcessMint(caller Address, profileID, noteID uint64, to Address, data string) error
}

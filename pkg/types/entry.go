package types

import "errors"

// Entry is the public operation surface of the ledger: profile registrar,
// link graph engine, note store, and mint orchestrator behind one
// single-writer applier. Every operation is atomic; any failure leaves all
// state untouched and emits no event.
type Entry interface {
	// Attach connects the entry to the backend described by config.
	// Creates the DataDir if it does not exist and reloads persisted
	// state. Returns ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls
	// succeed. After Detach, operations return ErrDetached.
	Detach() error

	// CreateProfile registers a new profile and returns its id.
	// Profile ids are assigned monotonically starting at 1.
	CreateProfile(owner Address, handle, uri string) (uint64, error)

	// ProfileOwner returns the controlling address of a profile.
	ProfileOwner(profileID uint64) (Address, error)

	// Link mutations. Each validates that caller owns fromProfileID,
	// lazily creates the profile's linklist, and records the target under
	// the category. Linking an already-linked target under the same
	// category is a no-op success. Profile, note, and linklist targets
	// must exist; address, erc721, and any targets are accepted unchecked.
	LinkProfile(caller Address, fromProfileID, toProfileID uint64, category, data string) error
	LinkAddress(caller Address, fromProfileID uint64, to Address, category, data string) error
	LinkNote(caller Address, fromProfileID, toProfileID, toNoteID uint64, category, data string) error
	LinkERC721(caller Address, fromProfileID uint64, contract Address, tokenID uint64, category, data string) error
	LinkLinklist(caller Address, fromProfileID, toLinklistID uint64, category, data string) error
	LinkAny(caller Address, fromProfileID uint64, uri, category, data string) error

	// Unlink mutations mirror their link counterparts. Removing an entry
	// that is not present fails with ErrLinkNotFound.
	UnlinkProfile(caller Address, fromProfileID, toProfileID uint64, category string) error
	UnlinkAddress(caller Address, fromProfileID uint64, to Address, category string) error
	UnlinkNote(caller Address, fromProfileID, toProfileID, toNoteID uint64, category string) error
	UnlinkERC721(caller Address, fromProfileID uint64, contract Address, tokenID uint64, category string) error
	UnlinkLinklist(caller Address, fromProfileID, toLinklistID uint64, category string) error
	UnlinkAny(caller Address, fromProfileID uint64, uri, category string) error

	// PostNote appends a note to the profile's namespace and returns the
	// assigned note id. Note-level module init hooks run synchronously;
	// a hook failure aborts the post entirely.
	PostNote(caller Address, post PostNoteData) (uint64, error)

	// PostNote4*Link additionally bind the note to a link item that must
	// already be present in the posting profile's linklist under the given
	// category; a missing item fails with ErrLinkNotFound.
	PostNote4ProfileLink(caller Address, post PostNoteData, toProfileID uint64, category string) (uint64, error)
	PostNote4AddressLink(caller Address, post PostNoteData, to Address, category string) (uint64, error)
	PostNote4LinklistLink(caller Address, post PostNoteData, toLinklistID uint64, category string) (uint64, error)
	PostNote4ERC721Link(caller Address, post PostNoteData, contract Address, tokenID uint64, category string) (uint64, error)
	PostNote4AnyLink(caller Address, post PostNoteData, uri, category string) (uint64, error)

	// GetNote returns the note record. Fails with ErrNoteNotFound if the
	// note was never created. Deleted notes are still readable.
	GetNote(profileID, noteID uint64) (*Note, error)

	// SetNoteURI replaces the note's content pointer.
	SetNoteURI(caller Address, profileID, noteID uint64, uri string) error

	// DeleteNote tombstones the note. The note id is never reassigned and
	// already-minted tokens stay valid. Fails with ErrNoteDeleted if the
	// note is already deleted.
	DeleteNote(caller Address, profileID, noteID uint64) error

	// MintNote issues one unit of the note's issuance contract to the
	// recipient. Open to any caller; gating is the mint module's decision.
	// The issuance contract is deployed lazily on the first successful
	// mint and its address never changes afterwards. Returns the contract
	// address and the minted token id (sequential from 1).
	MintNote(caller Address, profileID, noteID uint64, to Address, data string) (Address, uint64, error)

	// OwnerOf returns the owner of a minted token.
	OwnerOf(nft Address, tokenID uint64) (Address, error)

	// GetLinklistID returns the profile's linklist id, or
	// ErrLinklistNotFound if the profile has never linked.
	GetLinklistID(profileID uint64) (uint64, error)

	// Links enumerates the profile's link items under a category in
	// insertion order.
	Links(profileID uint64, category string) ([]LinkItem, error)

	// Events returns all events with Seq greater than sinceSeq, in order.
	Events(sinceSeq uint64) ([]Event, error)

	// RegisterLinkModule and RegisterMintModule make a module
	// implementation addressable by the ledger.
	RegisterLinkModule(addr Address, m LinkModule) error
	RegisterMintModule(addr Address, m MintModule) error

	// SetLinkModule binds a registered link module to a category; every
	// link under that category passes through the module's ProcessLink.
	// AddressZero clears the binding.
	SetLinkModule(category string, addr Address) error
}

// Entry lifecycle errors.
var (
	ErrAlreadyAttached = errors.New("entry is already attached")
	ErrDetached        = errors.New("entry is detached")
)

// Operation errors.
var (
	ErrNotProfileOwner  = errors.New("caller is not the profile owner")
	ErrProfileNotFound  = errors.New("profile not found")
	ErrTargetNotFound   = errors.New("link target not found")
	ErrLinkNotFound     = errors.New("link not found")
	ErrLinklistNotFound = errors.New("profile has no linklist")
	ErrNoteNotFound     = errors.New("note not found")
	ErrNoteDeleted      = errors.New("note is deleted")
	ErrTokenNotFound    = errors.New("token not found")
	ErrMintNotApproved  = errors.New("mint not approved by mint module")
	ErrModuleNotFound   = errors.New("module is not registered")
	ErrInvalidData      = errors.New("invalid data")
)

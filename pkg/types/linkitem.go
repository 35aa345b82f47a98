package types

import "fmt"

// Link item type tags. Each tag names one variant of the LinkItem union.
// The empty string marks "no link item" on a note.
const (
	LinkItemTypeProfile  = "profile"
	LinkItemTypeAddress  = "address"
	LinkItemTypeNote     = "note"
	LinkItemTypeERC721   = "erc721"
	LinkItemTypeLinklist = "linklist"
	LinkItemTypeAny      = "any"
)

// validLinkItemTypes is the set of recognized link item type tags.
var validLinkItemTypes = map[string]bool{
	LinkItemTypeProfile:  true,
	LinkItemTypeAddress:  true,
	LinkItemTypeNote:     true,
	LinkItemTypeERC721:   true,
	LinkItemTypeLinklist: true,
	LinkItemTypeAny:      true,
}

// ValidLinkItemType reports whether t is a recognized link item type tag.
func ValidLinkItemType(t string) bool {
	return validLinkItemTypes[t]
}

// LinkItem is a tagged union over link target kinds. ItemType selects the
// variant; only the payload fields of that variant are meaningful. A
// LinkItem carries enough data to re-resolve its target later, but the
// ledger never re-validates existence after the mutation that stored it.
type LinkItem struct {
	ItemType string `json:"item_type"`

	// Profile and Note variants.
	ToProfileID uint64 `json:"to_profile_id,omitempty"`
	ToNoteID    uint64 `json:"to_note_id,omitempty"`

	// Address variant.
	ToAddress Address `json:"to_address,omitempty"`

	// ERC721 variant.
	Contract Address `json:"contract,omitempty"`
	TokenID  uint64  `json:"token_id,omitempty"`

	// Linklist variant.
	ToLinklistID uint64 `json:"to_linklist_id,omitempty"`

	// Any variant.
	URI string `json:"uri,omitempty"`
}

// ProfileItem returns a LinkItem targeting another profile.
func ProfileItem(profileID uint64) LinkItem {
	return LinkItem{ItemType: LinkItemTypeProfile, ToProfileID: profileID}
}

// AddressItem returns a LinkItem targeting a raw address.
func AddressItem(addr Address) LinkItem {
	return LinkItem{ItemType: LinkItemTypeAddress, ToAddress: addr}
}

// NoteItem returns a LinkItem targeting a note.
func NoteItem(profileID, noteID uint64) LinkItem {
	return LinkItem{ItemType: LinkItemTypeNote, ToProfileID: profileID, ToNoteID: noteID}
}

// ERC721Item returns a LinkItem targeting an external token.
func ERC721Item(contract Address, tokenID uint64) LinkItem {
	return LinkItem{ItemType: LinkItemTypeERC721, Contract: contract, TokenID: tokenID}
}

// LinklistItem returns a LinkItem targeting another profile's linklist.
func LinklistItem(linklistID uint64) LinkItem {
	return LinkItem{ItemType: LinkItemTypeLinklist, ToLinklistID: linklistID}
}

// AnyItem returns a LinkItem targeting an opaque URI.
func AnyItem(uri string) LinkItem {
	return LinkItem{ItemType: LinkItemTypeAny, URI: uri}
}

// Key returns the encoded identity of the link item: a pure function of the
// variant and its payload. Two items with equal keys are the same link for
// deduplication and removal.
func (li LinkItem) Key() string {
	switch li.ItemType {
	case LinkItemTypeProfile:
		return fmt.Sprintf("profile:%d", li.ToProfileID)
	case LinkItemTypeAddress:
		return fmt.Sprintf("address:%s", li.ToAddress)
	case LinkItemTypeNote:
		return fmt.Sprintf("note:%d:%d", li.ToProfileID, li.ToNoteID)
	case LinkItemTypeERC721:
		return fmt.Sprintf("erc721:%s:%d", li.Contract, li.TokenID)
	case LinkItemTypeLinklist:
		return fmt.Sprintf("linklist:%d", li.ToLinklistID)
	case LinkItemTypeAny:
		return fmt.Sprintf("any:%s", li.URI)
	}
	return ""
}

// Validate checks that the item carries a recognized type tag and the
// payload its variant requires. Returns ErrInvalidData on violation.
func (li LinkItem) Validate() error {
	switch li.ItemType {
	case LinkItemTypeProfile:
		if li.ToProfileID == 0 {
			return ErrInvalidData
		}
	case LinkItemTypeAddress:
		if li.ToAddress.IsZero() {
			return ErrInvalidData
		}
	case LinkItemTypeNote:
		if li.ToProfileID == 0 || li.ToNoteID == 0 {
			return ErrInvalidData
		}
	case LinkItemTypeERC721:
		if li.Contract.IsZero() {
			return ErrInvalidData
		}
	case LinkItemTypeLinklist:
		if li.ToLinklistID == 0 {
			return ErrInvalidData
		}
	case LinkItemTypeAny:
		if li.URI == "" {
			return ErrInvalidData
		}
	default:
		return ErrInvalidData
	}
	return nil
}

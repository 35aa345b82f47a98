// Link graph operations. One public pair per target kind, all funneling
// into a shared link/unlink core that handles authorization, lazy linklist
// creation, dedup, category module hooks, and events.
package entry

import (
	"fmt"

	"github.com/iavl/crossbell/pkg/types"
)

// LinkProfile links another profile. The target profile must exist.
func (e *Entry) LinkProfile(caller types.Address, fromProfileID, toProfileID uint64, category, data string) error {
	return e.link(caller, fromProfileID, types.ProfileItem(toProfileID), category, data)
}

// UnlinkProfile removes a profile link.
func (e *Entry) UnlinkProfile(caller types.Address, fromProfileID, toProfileID uint64, category string) error {
	return e.unlink(caller, fromProfileID, types.ProfileItem(toProfileID), category)
}

// LinkAddress links a raw address. No existence oracle is available for
// addresses, so the target is accepted unchecked.
func (e *Entry) LinkAddress(caller types.Address, fromProfileID uint64, to types.Address, category, data string) error {
	return e.link(caller, fromProfileID, types.AddressItem(to), category, data)
}

// UnlinkAddress removes an address link.
func (e *Entry) UnlinkAddress(caller types.Address, fromProfileID uint64, to types.Address, category string) error {
	return e.unlink(caller, fromProfileID, types.AddressItem(to), category)
}

// LinkNote links a note. The target note must exist; a tombstoned note is
// still structurally present and linkable.
func (e *Entry) LinkNote(caller types.Address, fromProfileID, toProfileID, toNoteID uint64, category, data string) error {
	return e.link(caller, fromProfileID, types.NoteItem(toProfileID, toNoteID), category, data)
}

// UnlinkNote removes a note link.
func (e *Entry) UnlinkNote(caller types.Address, fromProfileID, toProfileID, toNoteID uint64, category string) error {
	return e.unlink(caller, fromProfileID, types.NoteItem(toProfileID, toNoteID), category)
}

// LinkERC721 links an external token, accepted unchecked.
func (e *Entry) LinkERC721(caller types.Address, fromProfileID uint64, contract types.Address, tokenID uint64, category, data string) error {
	return e.link(caller, fromProfileID, types.ERC721Item(contract, tokenID), category, data)
}

// UnlinkERC721 removes an external token link.
func (e *Entry) UnlinkERC721(caller types.Address, fromProfileID uint64, contract types.Address, tokenID uint64, category string) error {
	return e.unlink(caller, fromProfileID, types.ERC721Item(contract, tokenID), category)
}

// LinkLinklist links another profile's linklist. The target linklist must
// exist.
func (e *Entry) LinkLinklist(caller types.Address, fromProfileID, toLinklistID uint64, category, data string) error {
	return e.link(caller, fromProfileID, types.LinklistItem(toLinklistID), category, data)
}

// UnlinkLinklist removes a linklist link.
func (e *Entry) UnlinkLinklist(caller types.Address, fromProfileID, toLinklistID uint64, category string) error {
	return e.unlink(caller, fromProfileID, types.LinklistItem(toLinklistID), category)
}

// LinkAny links an opaque URI, accepted unchecked.
func (e *Entry) LinkAny(caller types.Address, fromProfileID uint64, uri, category, data string) error {
	return e.link(caller, fromProfileID, types.AnyItem(uri), category, data)
}

// UnlinkAny removes a URI link.
func (e *Entry) UnlinkAny(caller types.Address, fromProfileID uint64, uri, category string) error {
	return e.unlink(caller, fromProfileID, types.AnyItem(uri), category)
}

// link is the shared insertion path. Linking a target already present under
// the same category is a no-op success, which makes retries safe.
func (e *Entry) link(caller types.Address, fromProfileID uint64, item types.LinkItem, category, data string) error {
	e.opMu.Lock()
	defer e.opMu.Unlock()

	if err := item.Validate(); err != nil {
		return err
	}
	if err := e.requireOwner(fromProfileID, caller); err != nil {
		return err
	}
	if err := e.checkLinkTarget(item); err != nil {
		return err
	}

	tx, err := e.store.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	linklistID, err := e.store.EnsureLinklist(tx, fromProfileID)
	if err != nil {
		return err
	}

	exists, err := e.store.HasLinkItem(tx, linklistID, category, item.Key())
	if err != nil {
		return err
	}
	if exists {
		// Idempotent: the link is already in place, nothing to record.
		return nil
	}

	if err := e.store.InsertLinkItem(tx, linklistID, category, item); err != nil {
		return err
	}

	ev := types.Event{
		Name:       types.EventLinkCreated,
		Caller:     caller,
		ProfileID:  fromProfileID,
		LinklistID: linklistID,
		Category:   category,
		LinkKey:    item.Key(),
	}
	if err := e.store.AppendEvent(tx, &ev); err != nil {
		return err
	}

	// The category's module sees the provisional mutation and can only
	// reject it; rejection unwinds everything recorded above.
	if err := e.invokeLinkModule(caller, fromProfileID, item, category, data); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing link: %w", err)
	}
	e.persistAndLog(ev, "linklists", "linklist_items", "counters", "events")
	return nil
}

// unlink is the shared removal path. The entry is located by encoded
// identity; surviving entries keep their order.
func (e *Entry) unlink(caller types.Address, fromProfileID uint64, item types.LinkItem, category string) error {
	e.opMu.Lock()
	defer e.opMu.Unlock()

	if err := item.Validate(); err != nil {
		return err
	}
	if err := e.requireOwner(fromProfileID, caller); err != nil {
		return err
	}

	linklistID, err := e.store.GetLinklistID(fromProfileID)
	if err != nil {
		if err == types.ErrLinklistNotFound {
			return types.ErrLinkNotFound
		}
		return err
	}

	tx, err := e.store.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	removed, err := e.store.DeleteLinkItem(tx, linklistID, category, item.Key())
	if err != nil {
		return err
	}
	if !removed {
		return types.ErrLinkNotFound
	}

	ev := types.Event{
		Name:       types.EventLinkRemoved,
		Caller:     caller,
		ProfileID:  fromProfileID,
		LinklistID: linklistID,
		Category:   category,
		LinkKey:    item.Key(),
	}
	if err := e.store.AppendEvent(tx, &ev); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing unlink: %w", err)
	}
	e.persistAndLog(ev, "linklist_items", "counters", "events")
	return nil
}

// checkLinkTarget enforces structural existence for target kinds the
// ledger can resolve. Address, erc721, and any targets have no existence
// oracle and pass unchecked.
func (e *Entry) checkLinkTarget(item types.LinkItem) error {
	switch item.ItemType {
	case types.LinkItemTypeProfile:
		if _, err := e.store.GetProfile(item.ToProfileID); err != nil {
			if err == types.ErrProfileNotFound {
				return types.ErrTargetNotFound
			}
			return err
		}
	case types.LinkItemTypeNote:
		if _, err := e.store.GetNote(item.ToProfileID, item.ToNoteID); err != nil {
			if err == types.ErrNoteNotFound {
				return types.ErrTargetNotFound
			}
			return err
		}
	case types.LinkItemTypeLinklist:
		exists, err := e.store.LinklistExists(item.ToLinklistID)
		if err != nil {
			return err
		}
		if !exists {
			return types.ErrTargetNotFound
		}
	}
	return nil
}

// invokeLinkModule runs the category's bound link module, if any. The
// module's failure is surfaced unchanged.
func (e *Entry) invokeLinkModule(caller types.Address, fromProfileID uint64, item types.LinkItem, category, data string) error {
	addr, ok := e.categoryModules[category]
	if !ok {
		return nil
	}
	m, ok := e.linkModules[addr]
	if !ok {
		return types.ErrModuleNotFound
	}
	return m.ProcessLink(caller, fromProfileID, item, data)
}

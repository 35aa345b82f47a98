// Note store operations. Note ids are assigned inside the operation's
// transaction, so an aborted post never burns an id.
package entry

import (
	"fmt"
	"time"

	"github.com/iavl/crossbell/pkg/types"
)

// linkRef is the resolved link binding of a postNote4*Link variant.
type linkRef struct {
	itemType   string
	linklistID uint64
	key        string
}

// PostNote appends a note attached to the bare profile.
func (e *Entry) PostNote(caller types.Address, post types.PostNoteData) (uint64, error) {
	e.opMu.Lock()
	defer e.opMu.Unlock()
	return e.postNote(caller, post, nil)
}

// PostNote4ProfileLink appends a note bound to an existing profile link.
func (e *Entry) PostNote4ProfileLink(caller types.Address, post types.PostNoteData, toProfileID uint64, category string) (uint64, error) {
	return e.postNote4Link(caller, post, types.ProfileItem(toProfileID), category)
}

// PostNote4AddressLink appends a note bound to an existing address link.
func (e *Entry) PostNote4AddressLink(caller types.Address, post types.PostNoteData, to types.Address, category string) (uint64, error) {
	return e.postNote4Link(caller, post, types.AddressItem(to), category)
}

// PostNote4LinklistLink appends a note bound to an existing linklist link.
func (e *Entry) PostNote4LinklistLink(caller types.Address, post types.PostNoteData, toLinklistID uint64, category string) (uint64, error) {
	return e.postNote4Link(caller, post, types.LinklistItem(toLinklistID), category)
}

// PostNote4ERC721Link appends a note bound to an existing external token
// link.
func (e *Entry) PostNote4ERC721Link(caller types.Address, post types.PostNoteData, contract types.Address, tokenID uint64, category string) (uint64, error) {
	return e.postNote4Link(caller, post, types.ERC721Item(contract, tokenID), category)
}

// PostNote4AnyLink appends a note bound to an existing URI link.
func (e *Entry) PostNote4AnyLink(caller types.Address, post types.PostNoteData, uri, category string) (uint64, error) {
	return e.postNote4Link(caller, post, types.AnyItem(uri), category)
}

// postNote4Link resolves the bound link item in the posting profile's
// linklist. Existence is checked once, here; the binding is never
// re-validated if the item is later unlinked.
func (e *Entry) postNote4Link(caller types.Address, post types.PostNoteData, item types.LinkItem, category string) (uint64, error) {
	e.opMu.Lock()
	defer e.opMu.Unlock()

	if err := item.Validate(); err != nil {
		return 0, err
	}
	if err := e.requireOwner(post.ProfileID, caller); err != nil {
		return 0, err
	}

	linklistID, err := e.store.GetLinklistID(post.ProfileID)
	if err != nil {
		if err == types.ErrLinklistNotFound {
			return 0, types.ErrLinkNotFound
		}
		return 0, err
	}
	present, err := e.store.HasLinkItemKey(linklistID, category, item.Key())
	if err != nil {
		return 0, err
	}
	if !present {
		return 0, types.ErrLinkNotFound
	}

	return e.postNote(caller, post, &linkRef{
		itemType:   item.ItemType,
		linklistID: linklistID,
		key:        item.Key(),
	})
}

// postNote is the shared creation path. Callers hold the operation lock and
// have already resolved any link binding; ownership is checked here for the
// plain PostNote path and is harmless to repeat for the 4Link variants.
func (e *Entry) postNote(caller types.Address, post types.PostNoteData, ref *linkRef) (uint64, error) {
	if err := e.requireOwner(post.ProfileID, caller); err != nil {
		return 0, err
	}

	tx, err := e.store.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	noteID, err := e.store.NextNoteID(tx, post.ProfileID)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	note := &types.Note{
		ProfileID:      post.ProfileID,
		NoteID:         noteID,
		ContentURI:     post.ContentURI,
		LinkModule:     post.LinkModule,
		LinkModuleData: post.LinkModuleData,
		MintModule:     post.MintModule,
		MintModuleData: post.MintModuleData,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if ref != nil {
		note.LinkItemType = ref.itemType
		note.LinklistID = ref.linklistID
		note.LinkKey = ref.key
	}
	if err := e.store.InsertNote(tx, note); err != nil {
		return 0, err
	}

	ev := types.Event{
		Name:       types.EventNotePosted,
		Caller:     caller,
		ProfileID:  post.ProfileID,
		NoteID:     noteID,
		LinklistID: note.LinklistID,
		LinkKey:    note.LinkKey,
	}
	if err := e.store.AppendEvent(tx, &ev); err != nil {
		return 0, err
	}

	// Module init hooks run after the provisional insert; either failing
	// unwinds the whole post, including the note id assignment.
	if !post.LinkModule.IsZero() {
		m, ok := e.linkModules[post.LinkModule]
		if !ok {
			return 0, types.ErrModuleNotFound
		}
		if err := m.InitializeLinkModule(post.ProfileID, noteID, post.LinkModuleData); err != nil {
			return 0, err
		}
	}
	if !post.MintModule.IsZero() {
		m, ok := e.mintModules[post.MintModule]
		if !ok {
			return 0, types.ErrModuleNotFound
		}
		if err := m.InitializeMintModule(post.ProfileID, noteID, post.MintModuleData); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing note: %w", err)
	}
	e.persistAndLog(ev, "notes", "profiles", "counters", "events")
	return noteID, nil
}

// GetNote returns the note record. Deleted notes remain readable; their
// content pointer and link binding are inert but preserved.
func (e *Entry) GetNote(profileID, noteID uint64) (*types.Note, error) {
	e.opMu.RLock()
	defer e.opMu.RUnlock()
	return e.store.GetNote(profileID, noteID)
}

// SetNoteURI replaces the note's content pointer.
func (e *Entry) SetNoteURI(caller types.Address, profileID, noteID uint64, uri string) error {
	return e.mutateNote(caller, profileID, noteID, types.EventNoteURISet, uri)
}

// DeleteNote tombstones the note. The id is never reassigned and minted
// tokens stay valid.
func (e *Entry) DeleteNote(caller types.Address, profileID, noteID uint64) error {
	return e.mutateNote(caller, profileID, noteID, types.EventNoteDeleted, "")
}

// mutateNote is the shared guard for note updates: ownership, existence,
// and the tombstone check, then one transaction around the mutation.
func (e *Entry) mutateNote(caller types.Address, profileID, noteID uint64, eventName, uri string) error {
	e.opMu.Lock()
	defer e.opMu.Unlock()

	if err := e.requireOwner(profileID, caller); err != nil {
		return err
	}
	note, err := e.store.GetNote(profileID, noteID)
	if err != nil {
		return err
	}
	if note.Deleted {
		return types.ErrNoteDeleted
	}

	tx, err := e.store.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	switch eventName {
	case types.EventNoteURISet:
		if err := e.store.UpdateNoteURI(tx, profileID, noteID, uri); err != nil {
			return err
		}
	case types.EventNoteDeleted:
		if err := e.store.MarkNoteDeleted(tx, profileID, noteID); err != nil {
			return err
		}
	}

	ev := types.Event{
		Name:      eventName,
		Caller:    caller,
		ProfileID: profileID,
		NoteID:    noteID,
	}
	if err := e.store.AppendEvent(tx, &ev); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing note update: %w", err)
	}
	e.persistAndLog(ev, "notes", "counters", "events")
	return nil
}

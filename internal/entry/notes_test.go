// Tests for the note store operations.
package entry

import (
	"errors"
	"testing"

	"github.com/iavl/crossbell/pkg/types"
)

func TestPostNote(t *testing.T) {
	e := setupEntry(t)
	alice := createTestProfile(t, e, "alice")

	noteID, err := e.PostNote("alice", types.PostNoteData{
		ProfileID:  alice,
		ContentURI: "ipfs://note-1",
	})
	if err != nil {
		t.Fatalf("PostNote failed: %v", err)
	}
	if noteID != 1 {
		t.Fatalf("first note id = %d, want 1", noteID)
	}

	note, err := e.GetNote(alice, noteID)
	if err != nil {
		t.Fatalf("GetNote failed: %v", err)
	}
	if note.ContentURI != "ipfs://note-1" {
		t.Errorf("ContentURI = %q", note.ContentURI)
	}
	if note.LinkItemType != "" || note.LinklistID != 0 || note.LinkKey != "" {
		t.Errorf("plain note carries a link binding: %+v", note)
	}
	if note.Deleted {
		t.Error("fresh note reports deleted")
	}
}

func TestPostNoteIDsPerProfile(t *testing.T) {
	// Note ids are a per-profile sequence, not global.
	e := setupEntry(t)
	alice := createTestProfile(t, e, "alice")
	bob := createTestProfile(t, e, "bob")

	post := func(owner types.Address, profileID uint64) uint64 {
		t.Helper()
		id, err := e.PostNote(owner, types.PostNoteData{ProfileID: profileID, ContentURI: "ipfs://x"})
		if err != nil {
			t.Fatalf("PostNote failed: %v", err)
		}
		return id
	}

	if got := post("alice", alice); got != 1 {
		t.Errorf("alice note 1 = %d", got)
	}
	if got := post("bob", bob); got != 1 {
		t.Errorf("bob note 1 = %d", got)
	}
	if got := post("alice", alice); got != 2 {
		t.Errorf("alice note 2 = %d", got)
	}
	if got := post("bob", bob); got != 2 {
		t.Errorf("bob note 2 = %d", got)
	}
}

func TestPostNoteRequiresOwner(t *testing.T) {
	e := setupEntry(t)
	alice := createTestProfile(t, e, "alice")

	_, err := e.PostNote("mallory", types.PostNoteData{ProfileID: alice, ContentURI: "ipfs://x"})
	if err != types.ErrNotProfileOwner {
		t.Fatalf("expected ErrNotProfileOwner, got %v", err)
	}
	_, err = e.PostNote("alice", types.PostNoteData{ProfileID: 99, ContentURI: "ipfs://x"})
	if err != types.ErrProfileNotFound {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestPostNoteModuleInitFailureDoesNotBurnID(t *testing.T) {
	e := setupEntry(t)
	alice := createTestProfile(t, e, "alice")

	boom := errors.New("bad init data")
	if err := e.RegisterMintModule("mint-mod", &stubMintModule{initErr: boom}); err != nil {
		t.Fatalf("RegisterMintModule failed: %v", err)
	}

	before := countEvents(t, e)
	_, err := e.PostNote("alice", types.PostNoteData{
		ProfileID:      alice,
		ContentURI:     "ipfs://x",
		MintModule:     "mint-mod",
		MintModuleData: "nonsense",
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected init failure, got %v", err)
	}
	if n := countEvents(t, e); n != before {
		t.Errorf("failed post emitted an event (%d -> %d)", before, n)
	}
	if _, err := e.GetNote(alice, 1); err != types.ErrNoteNotFound {
		t.Errorf("failed post left a note, got %v", err)
	}

	// The unwound post did not consume the note id.
	id, err := e.PostNote("alice", types.PostNoteData{ProfileID: alice, ContentURI: "ipfs://y"})
	if err != nil {
		t.Fatalf("PostNote failed: %v", err)
	}
	if id != 1 {
		t.Errorf("note id after failed post = %d, want 1", id)
	}
}

func TestPostNoteUnregisteredModule(t *testing.T) {
	e := setupEntry(t)
	alice := createTestProfile(t, e, "alice")

	_, err := e.PostNote("alice", types.PostNoteData{
		ProfileID:  alice,
		ContentURI: "ipfs://x",
		LinkModule: "nobody-home",
	})
	if err != types.ErrModuleNotFound {
		t.Fatalf("link module: expected ErrModuleNotFound, got %v", err)
	}

	_, err = e.PostNote("alice", types.PostNoteData{
		ProfileID:  alice,
		ContentURI: "ipfs://x",
		MintModule: "nobody-home",
	})
	if err != types.ErrModuleNotFound {
		t.Fatalf("mint module: expected ErrModuleNotFound, got %v", err)
	}
}

func TestPostNote4ProfileLink(t *testing.T) {
	e := setupEntry(t)
	alice := createTestProfile(t, e, "alice")
	bob := createTestProfile(t, e, "bob")

	if err := e.LinkProfile("alice", alice, bob, "follow", ""); err != nil {
		t.Fatalf("LinkProfile failed: %v", err)
	}

	noteID, err := e.PostNote4ProfileLink("alice",
		types.PostNoteData{ProfileID: alice, ContentURI: "ipfs://comment"}, bob, "follow")
	if err != nil {
		t.Fatalf("PostNote4ProfileLink failed: %v", err)
	}

	note, err := e.GetNote(alice, noteID)
	if err != nil {
		t.Fatalf("GetNote failed: %v", err)
	}
	if note.LinkItemType != types.LinkItemTypeProfile {
		t.Errorf("LinkItemType = %q", note.LinkItemType)
	}
	if note.LinkKey != types.ProfileItem(bob).Key() {
		t.Errorf("LinkKey = %q", note.LinkKey)
	}
	listID, err := e.GetLinklistID(alice)
	if err != nil {
		t.Fatalf("GetLinklistID failed: %v", err)
	}
	if note.LinklistID != listID {
		t.Errorf("LinklistID = %d, want %d", note.LinklistID, listID)
	}
}

func TestPostNote4LinkRequiresExistingLink(t *testing.T) {
	e := setupEntry(t)
	alice := createTestProfile(t, e, "alice")
	bob := createTestProfile(t, e, "bob")

	// No link at all yet.
	_, err := e.PostNote4ProfileLink("alice",
		types.PostNoteData{ProfileID: alice, ContentURI: "ipfs://x"}, bob, "follow")
	if err != types.ErrLinkNotFound {
		t.Fatalf("expected ErrLinkNotFound, got %v", err)
	}

	// A link exists but under a different category.
	if err := e.LinkProfile("alice", alice, bob, "follow", ""); err != nil {
		t.Fatalf("LinkProfile failed: %v", err)
	}
	_, err = e.PostNote4ProfileLink("alice",
		types.PostNoteData{ProfileID: alice, ContentURI: "ipfs://x"}, bob, "block")
	if err != types.ErrLinkNotFound {
		t.Fatalf("wrong category: expected ErrLinkNotFound, got %v", err)
	}
}

func TestPostNote4LinkBindingSurvivesUnlink(t *testing.T) {
	// The link binding is resolved once at post time; unlinking later
	// does not touch the note.
	e := setupEntry(t)
	alice := createTestProfile(t, e, "alice")
	bob := createTestProfile(t, e, "bob")

	if err := e.LinkProfile("alice", alice, bob, "follow", ""); err != nil {
		t.Fatalf("LinkProfile failed: %v", err)
	}
	noteID, err := e.PostNote4ProfileLink("alice",
		types.PostNoteData{ProfileID: alice, ContentURI: "ipfs://x"}, bob, "follow")
	if err != nil {
		t.Fatalf("PostNote4ProfileLink failed: %v", err)
	}
	if err := e.UnlinkProfile("alice", alice, bob, "follow"); err != nil {
		t.Fatalf("UnlinkProfile failed: %v", err)
	}

	note, err := e.GetNote(alice, noteID)
	if err != nil {
		t.Fatalf("GetNote failed: %v", err)
	}
	if note.LinkKey != types.ProfileItem(bob).Key() {
		t.Errorf("binding lost after unlink: %+v", note)
	}
}

func TestSetNoteURI(t *testing.T) {
	e := setupEntry(t)
	alice := createTestProfile(t, e, "alice")
	noteID, err := e.PostNote("alice", types.PostNoteData{ProfileID: alice, ContentURI: "ipfs://old"})
	if err != nil {
		t.Fatalf("PostNote failed: %v", err)
	}

	if err := e.SetNoteURI("alice", alice, noteID, "ipfs://new"); err != nil {
		t.Fatalf("SetNoteURI failed: %v", err)
	}
	note, err := e.GetNote(alice, noteID)
	if err != nil {
		t.Fatalf("GetNote failed: %v", err)
	}
	if note.ContentURI != "ipfs://new" {
		t.Errorf("ContentURI = %q, want ipfs://new", note.ContentURI)
	}

	if err := e.SetNoteURI("mallory", alice, noteID, "ipfs://evil"); err != types.ErrNotProfileOwner {
		t.Errorf("expected ErrNotProfileOwner, got %v", err)
	}
	if err := e.SetNoteURI("alice", alice, 99, "ipfs://x"); err != types.ErrNoteNotFound {
		t.Errorf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestDeleteNote(t *testing.T) {
	e := setupEntry(t)
	alice := createTestProfile(t, e, "alice")
	noteID, err := e.PostNote("alice", types.PostNoteData{ProfileID: alice, ContentURI: "ipfs://x"})
	if err != nil {
		t.Fatalf("PostNote failed: %v", err)
	}

	if err := e.DeleteNote("alice", alice, noteID); err != nil {
		t.Fatalf("DeleteNote failed: %v", err)
	}

	// Deleted notes stay readable as tombstones.
	note, err := e.GetNote(alice, noteID)
	if err != nil {
		t.Fatalf("GetNote after delete failed: %v", err)
	}
	if !note.Deleted {
		t.Error("Deleted flag not set")
	}

	// Further mutation of a tombstone is refused.
	if err := e.DeleteNote("alice", alice, noteID); err != types.ErrNoteDeleted {
		t.Errorf("double delete: expected ErrNoteDeleted, got %v", err)
	}
	if err := e.SetNoteURI("alice", alice, noteID, "ipfs://y"); err != types.ErrNoteDeleted {
		t.Errorf("set uri on tombstone: expected ErrNoteDeleted, got %v", err)
	}

	// The id is never reassigned.
	next, err := e.PostNote("alice", types.PostNoteData{ProfileID: alice, ContentURI: "ipfs://z"})
	if err != nil {
		t.Fatalf("PostNote failed: %v", err)
	}
	if next != noteID+1 {
		t.Errorf("note id after delete = %d, want %d", next, noteID+1)
	}
}

func TestDeletedNoteRemainsLinkable(t *testing.T) {
	e := setupEntry(t)
	alice := createTestProfile(t, e, "alice")
	bob := createTestProfile(t, e, "bob")

	noteID, err := e.PostNote("alice", types.PostNoteData{ProfileID: alice, ContentURI: "ipfs://x"})
	if err != nil {
		t.Fatalf("PostNote failed: %v", err)
	}
	if err := e.DeleteNote("alice", alice, noteID); err != nil {
		t.Fatalf("DeleteNote failed: %v", err)
	}

	// The tombstone is still structurally present as a link target.
	if err := e.LinkNote("bob", bob, alice, noteID, "like", ""); err != nil {
		t.Errorf("linking a tombstoned note failed: %v", err)
	}
}

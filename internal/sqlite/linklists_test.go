// Tests for linklist creation and link item sequences.
package sqlite

import (
	"database/sql"
	"testing"

	"github.com/iavl/crossbell/pkg/types"
)

// ensureTestLinklist creates (or fetches) the profile's linklist in its own
// committed transaction.
func ensureTestLinklist(t *testing.T, s *Store, profileID uint64) uint64 {
	t.Helper()
	tx := mustBegin(t, s)
	id, err := s.EnsureLinklist(tx, profileID)
	if err != nil {
		t.Fatalf("EnsureLinklist failed: %v", err)
	}
	mustCommit(t, tx)
	return id
}

// insertTestItem commits one link item into the linklist.
func insertTestItem(t *testing.T, s *Store, linklistID uint64, category string, item types.LinkItem) {
	t.Helper()
	tx := mustBegin(t, s)
	if err := s.InsertLinkItem(tx, linklistID, category, item); err != nil {
		t.Fatalf("InsertLinkItem failed: %v", err)
	}
	mustCommit(t, tx)
}

func TestGetLinklistIDBeforeFirstLink(t *testing.T) {
	s := setupStore(t)
	profileID := insertTestProfile(t, s, "alice", "a")

	if _, err := s.GetLinklistID(profileID); err != types.ErrLinklistNotFound {
		t.Fatalf("expected ErrLinklistNotFound, got %v", err)
	}
}

func TestEnsureLinklistIsLazyAndStable(t *testing.T) {
	s := setupStore(t)
	alice := insertTestProfile(t, s, "alice", "a")
	bob := insertTestProfile(t, s, "bob", "b")

	first := ensureTestLinklist(t, s, alice)
	if first != 1 {
		t.Fatalf("first linklist id = %d, want 1", first)
	}

	// A second ensure returns the same list, not a new one.
	again := ensureTestLinklist(t, s, alice)
	if again != first {
		t.Errorf("second EnsureLinklist = %d, want %d", again, first)
	}

	second := ensureTestLinklist(t, s, bob)
	if second != 2 {
		t.Errorf("bob's linklist id = %d, want 2", second)
	}

	got, err := s.GetLinklistID(alice)
	if err != nil {
		t.Fatalf("GetLinklistID failed: %v", err)
	}
	if got != first {
		t.Errorf("GetLinklistID = %d, want %d", got, first)
	}

	exists, err := s.LinklistExists(first)
	if err != nil {
		t.Fatalf("LinklistExists failed: %v", err)
	}
	if !exists {
		t.Error("linklist must exist after ensure")
	}
}

func TestLinkItemsInsertionOrder(t *testing.T) {
	s := setupStore(t)
	alice := insertTestProfile(t, s, "alice", "a")
	listID := ensureTestLinklist(t, s, alice)

	insertTestItem(t, s, listID, "follow", types.ProfileItem(10))
	insertTestItem(t, s, listID, "follow", types.ProfileItem(20))
	insertTestItem(t, s, listID, "follow", types.ProfileItem(30))

	items, err := s.LinkItems(listID, "follow")
	if err != nil {
		t.Fatalf("LinkItems failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	for i, want := range []uint64{10, 20, 30} {
		if items[i].ToProfileID != want {
			t.Errorf("items[%d].ToProfileID = %d, want %d", i, items[i].ToProfileID, want)
		}
	}
}

func TestLinkItemsCategoriesAreIndependent(t *testing.T) {
	s := setupStore(t)
	alice := insertTestProfile(t, s, "alice", "a")
	listID := ensureTestLinklist(t, s, alice)

	insertTestItem(t, s, listID, "follow", types.ProfileItem(10))
	insertTestItem(t, s, listID, "block", types.ProfileItem(10))

	follows, err := s.LinkItems(listID, "follow")
	if err != nil {
		t.Fatalf("LinkItems failed: %v", err)
	}
	blocks, err := s.LinkItems(listID, "block")
	if err != nil {
		t.Fatalf("LinkItems failed: %v", err)
	}
	if len(follows) != 1 || len(blocks) != 1 {
		t.Fatalf("got %d follows, %d blocks; want 1 each", len(follows), len(blocks))
	}
}

func TestDeleteLinkItemPreservesOrder(t *testing.T) {
	s := setupStore(t)
	alice := insertTestProfile(t, s, "alice", "a")
	listID := ensureTestLinklist(t, s, alice)

	insertTestItem(t, s, listID, "follow", types.ProfileItem(10))
	insertTestItem(t, s, listID, "follow", types.ProfileItem(20))
	insertTestItem(t, s, listID, "follow", types.ProfileItem(30))

	tx := mustBegin(t, s)
	removed, err := s.DeleteLinkItem(tx, listID, "follow", types.ProfileItem(20).Key())
	if err != nil {
		t.Fatalf("DeleteLinkItem failed: %v", err)
	}
	if !removed {
		t.Fatal("expected item to be removed")
	}
	mustCommit(t, tx)

	items, err := s.LinkItems(listID, "follow")
	if err != nil {
		t.Fatalf("LinkItems failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].ToProfileID != 10 || items[1].ToProfileID != 30 {
		t.Errorf("survivor order = %d, %d; want 10, 30", items[0].ToProfileID, items[1].ToProfileID)
	}
}

func TestDeleteLinkItemMissing(t *testing.T) {
	s := setupStore(t)
	alice := insertTestProfile(t, s, "alice", "a")
	listID := ensureTestLinklist(t, s, alice)

	tx := mustBegin(t, s)
	removed, err := s.DeleteLinkItem(tx, listID, "follow", types.ProfileItem(99).Key())
	if err != nil {
		t.Fatalf("DeleteLinkItem failed: %v", err)
	}
	if removed {
		t.Error("expected no removal for missing item")
	}
	mustCommit(t, tx)
}

func TestHasLinkItem(t *testing.T) {
	s := setupStore(t)
	alice := insertTestProfile(t, s, "alice", "a")
	listID := ensureTestLinklist(t, s, alice)

	insertTestItem(t, s, listID, "follow", types.ProfileItem(10))

	checkHas := func(tx *sql.Tx, category, key string, want bool) {
		t.Helper()
		has, err := s.HasLinkItem(tx, listID, category, key)
		if err != nil {
			t.Fatalf("HasLinkItem failed: %v", err)
		}
		if has != want {
			t.Errorf("HasLinkItem(%s, %s) = %v, want %v", category, key, has, want)
		}
	}

	tx := mustBegin(t, s)
	checkHas(tx, "follow", "profile:10", true)
	checkHas(tx, "follow", "profile:99", false)
	checkHas(tx, "block", "profile:10", false)
	mustCommit(t, tx)

	// Read-path variant agrees.
	has, err := s.HasLinkItemKey(listID, "follow", "profile:10")
	if err != nil {
		t.Fatalf("HasLinkItemKey failed: %v", err)
	}
	if !has {
		t.Error("HasLinkItemKey = false, want true")
	}
}

func TestLinkItemsEmptyCategory(t *testing.T) {
	s := setupStore(t)
	alice := insertTestProfile(t, s, "alice", "a")
	listID := ensureTestLinklist(t, s, alice)

	items, err := s.LinkItems(listID, "follow")
	if err != nil {
		t.Fatalf("LinkItems failed: %v", err)
	}
	if items == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(items) != 0 {
		t.Fatalf("got %d items, want 0", len(items))
	}
}

// Linklist and link item table accessors. A linklist is created lazily on
// its profile's first link operation; items are partitioned by category and
// ordered by a monotonically assigned position that survives removals.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iavl/crossbell/pkg/types"
)

// GetLinklistID returns the linklist id owned by the profile, or
// ErrLinklistNotFound when the profile has never linked.
func (s *Store) GetLinklistID(profileID uint64) (uint64, error) {
	if !s.Attached() {
		return 0, types.ErrDetached
	}
	var id uint64
	err := s.db.QueryRow(
		"SELECT linklist_id FROM linklists WHERE profile_id = ?", profileID,
	).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, types.ErrLinklistNotFound
		}
		return 0, fmt.Errorf("getting linklist for profile %d: %w", profileID, err)
	}
	return id, nil
}

// LinklistExists reports whether a linklist with the given id exists.
func (s *Store) LinklistExists(linklistID uint64) (bool, error) {
	if !s.Attached() {
		return false, types.ErrDetached
	}
	var one int
	err := s.db.QueryRow(
		"SELECT 1 FROM linklists WHERE linklist_id = ?", linklistID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking linklist %d: %w", linklistID, err)
	}
	return true, nil
}

// EnsureLinklist returns the profile's linklist id, creating the linklist
// within the transaction if the profile has none. The owning profile is
// fixed at creation and never changes.
func (s *Store) EnsureLinklist(tx *sql.Tx, profileID uint64) (uint64, error) {
	var id uint64
	err := tx.QueryRow(
		"SELECT linklist_id FROM linklists WHERE profile_id = ?", profileID,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("getting linklist for profile %d: %w", profileID, err)
	}

	id, err = nextCounter(tx, counterLinklist)
	if err != nil {
		return 0, err
	}
	_, err = tx.Exec(
		"INSERT INTO linklists (linklist_id, profile_id, created_at) VALUES (?, ?, ?)",
		id, profileID, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("creating linklist for profile %d: %w", profileID, err)
	}
	return id, nil
}

// HasLinkItem reports whether the encoded identity is already present in
// the linklist under the category.
func (s *Store) HasLinkItem(tx *sql.Tx, linklistID uint64, category, key string) (bool, error) {
	var one int
	err := tx.QueryRow(
		"SELECT 1 FROM linklist_items WHERE linklist_id = ? AND category = ? AND item_key = ?",
		linklistID, category, key,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking link item: %w", err)
	}
	return true, nil
}

// HasLinkItemKey is the read-path variant of HasLinkItem, used when binding
// a note to an existing link.
func (s *Store) HasLinkItemKey(linklistID uint64, category, key string) (bool, error) {
	if !s.Attached() {
		return false, types.ErrDetached
	}
	var one int
	err := s.db.QueryRow(
		"SELECT 1 FROM linklist_items WHERE linklist_id = ? AND category = ? AND item_key = ?",
		linklistID, category, key,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking link item: %w", err)
	}
	return true, nil
}

// InsertLinkItem appends the item to the linklist under the category. The
// position is one past the highest ever assigned in that category, so
// insertion order is preserved and removals never renumber survivors.
func (s *Store) InsertLinkItem(tx *sql.Tx, linklistID uint64, category string, item types.LinkItem) error {
	var maxPos sql.NullInt64
	err := tx.QueryRow(
		"SELECT MAX(position) FROM linklist_items WHERE linklist_id = ? AND category = ?",
		linklistID, category,
	).Scan(&maxPos)
	if err != nil {
		return fmt.Errorf("reading max position: %w", err)
	}

	payload, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshaling link item: %w", err)
	}

	_, err = tx.Exec(
		"INSERT INTO linklist_items (linklist_id, category, position, item_key, item, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		linklistID, category, maxPos.Int64+1, item.Key(), string(payload),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting link item %s: %w", item.Key(), err)
	}
	return nil
}

// DeleteLinkItem removes the item with the encoded identity from the
// category's sequence. Reports whether an item was removed.
func (s *Store) DeleteLinkItem(tx *sql.Tx, linklistID uint64, category, key string) (bool, error) {
	res, err := tx.Exec(
		"DELETE FROM linklist_items WHERE linklist_id = ? AND category = ? AND item_key = ?",
		linklistID, category, key,
	)
	if err != nil {
		return false, fmt.Errorf("deleting link item %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking deleted rows: %w", err)
	}
	return n > 0, nil
}

// LinkItems enumerates the linklist's items under a category in insertion
// order.
func (s *Store) LinkItems(linklistID uint64, category string) ([]types.LinkItem, error) {
	if !s.Attached() {
		return nil, types.ErrDetached
	}
	rows, err := s.db.Query(
		"SELECT item FROM linklist_items WHERE linklist_id = ? AND category = ? ORDER BY position",
		linklistID, category,
	)
	if err != nil {
		return nil, fmt.Errorf("fetching link items: %w", err)
	}
	defer rows.Close()

	items := []types.LinkItem{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning link item: %w", err)
		}
		var item types.LinkItem
		if err := json.Unmarshal([]byte(payload), &item); err != nil {
			return nil, fmt.Errorf("unmarshaling link item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating link items: %w", err)
	}
	return items, nil
}

// Profile table accessors. Profiles are the root of every ownership check;
// reads go through the live handle, writes through the operation's
// transaction.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/iavl/crossbell/pkg/types"
)

// NextProfileID assigns the next profile id from the global sequence.
func (s *Store) NextProfileID(tx *sql.Tx) (uint64, error) {
	return nextCounter(tx, counterProfileID)
}

// InsertProfile persists a new profile row.
func (s *Store) InsertProfile(tx *sql.Tx, p *types.Profile) error {
	_, err := tx.Exec(
		"INSERT INTO profiles (profile_id, owner, handle, uri, next_note_id, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		p.ProfileID, string(p.Owner), p.Handle, p.URI, p.NextNoteID, p.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting profile %d: %w", p.ProfileID, err)
	}
	return nil
}

// GetProfile retrieves a profile by id. Returns ErrProfileNotFound when no
// profile exists with that id.
func (s *Store) GetProfile(profileID uint64) (*types.Profile, error) {
	if !s.Attached() {
		return nil, types.ErrDetached
	}
	row := s.db.QueryRow(
		"SELECT profile_id, owner, handle, uri, next_note_id, created_at FROM profiles WHERE profile_id = ?",
		profileID,
	)

	var p types.Profile
	var owner, createdAt string
	var uri sql.NullString
	if err := row.Scan(&p.ProfileID, &owner, &p.Handle, &uri, &p.NextNoteID, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrProfileNotFound
		}
		return nil, fmt.Errorf("getting profile %d: %w", profileID, err)
	}
	p.Owner = types.Address(owner)
	p.URI = uri.String

	var err error
	p.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &p, nil
}

// NextNoteID consumes and returns the profile's next note id within the
// transaction. Assignments roll back with the enclosing operation, so a
// failed post never burns an id.
func (s *Store) NextNoteID(tx *sql.Tx, profileID uint64) (uint64, error) {
	var next uint64
	err := tx.QueryRow(
		"SELECT next_note_id FROM profiles WHERE profile_id = ?", profileID,
	).Scan(&next)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, types.ErrProfileNotFound
		}
		return 0, fmt.Errorf("reading next note id for profile %d: %w", profileID, err)
	}

	_, err = tx.Exec(
		"UPDATE profiles SET next_note_id = ? WHERE profile_id = ?", next+1, profileID,
	)
	if err != nil {
		return 0, fmt.Errorf("advancing note id for profile %d: %w", profileID, err)
	}
	return next, nil
}

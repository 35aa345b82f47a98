// Note table accessors. Notes are append-only per profile; deletion is a
// tombstone and the mint NFT address is written exactly once.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/iavl/crossbell/pkg/types"
)

// InsertNote persists a new note row.
func (s *Store) InsertNote(tx *sql.Tx, n *types.Note) error {
	_, err := tx.Exec(
		`INSERT INTO notes (profile_id, note_id, link_item_type, linklist_id, link_key,
		    content_uri, link_module, link_module_data, mint_module, mint_module_data,
		    mint_nft, deleted, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ProfileID, n.NoteID, n.LinkItemType, n.LinklistID, n.LinkKey,
		n.ContentURI, string(n.LinkModule), n.LinkModuleData, string(n.MintModule), n.MintModuleData,
		string(n.MintNFT), boolToInt(n.Deleted),
		n.CreatedAt.Format(time.RFC3339), n.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting note %d/%d: %w", n.ProfileID, n.NoteID, err)
	}
	return nil
}

// GetNote retrieves a note by (profileID, noteID). Returns ErrNoteNotFound
// when the note was never created; deleted notes are returned with the
// Deleted flag set.
func (s *Store) GetNote(profileID, noteID uint64) (*types.Note, error) {
	if !s.Attached() {
		return nil, types.ErrDetached
	}
	row := s.db.QueryRow(
		`SELECT profile_id, note_id, link_item_type, linklist_id, link_key,
		    content_uri, link_module, link_module_data, mint_module, mint_module_data,
		    mint_nft, deleted, created_at, updated_at
		 FROM notes WHERE profile_id = ? AND note_id = ?`,
		profileID, noteID,
	)

	var n types.Note
	var linkModule, mintModule, mintNFT string
	var deleted int
	var createdAt, updatedAt string
	err := row.Scan(
		&n.ProfileID, &n.NoteID, &n.LinkItemType, &n.LinklistID, &n.LinkKey,
		&n.ContentURI, &linkModule, &n.LinkModuleData, &mintModule, &n.MintModuleData,
		&mintNFT, &deleted, &createdAt, &updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNoteNotFound
		}
		return nil, fmt.Errorf("getting note %d/%d: %w", profileID, noteID, err)
	}
	n.LinkModule = types.Address(linkModule)
	n.MintModule = types.Address(mintModule)
	n.MintNFT = types.Address(mintNFT)
	n.Deleted = deleted != 0

	if n.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if n.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &n, nil
}

// UpdateNoteURI replaces the note's content pointer.
func (s *Store) UpdateNoteURI(tx *sql.Tx, profileID, noteID uint64, uri string) error {
	_, err := tx.Exec(
		"UPDATE notes SET content_uri = ?, updated_at = ? WHERE profile_id = ? AND note_id = ?",
		uri, time.Now().UTC().Format(time.RFC3339), profileID, noteID,
	)
	if err != nil {
		return fmt.Errorf("updating note %d/%d uri: %w", profileID, noteID, err)
	}
	return nil
}

// MarkNoteDeleted tombstones the note. The row stays; only the flag flips.
func (s *Store) MarkNoteDeleted(tx *sql.Tx, profileID, noteID uint64) error {
	_, err := tx.Exec(
		"UPDATE notes SET deleted = 1, updated_at = ? WHERE profile_id = ? AND note_id = ?",
		time.Now().UTC().Format(time.RFC3339), profileID, noteID,
	)
	if err != nil {
		return fmt.Errorf("deleting note %d/%d: %w", profileID, noteID, err)
	}
	return nil
}

// SetNoteMintNFT records the note's issuance contract address. Called once,
// on the first successful mint.
func (s *Store) SetNoteMintNFT(tx *sql.Tx, profileID, noteID uint64, nft types.Address) error {
	_, err := tx.Exec(
		"UPDATE notes SET mint_nft = ?, updated_at = ? WHERE profile_id = ? AND note_id = ?",
		string(nft), time.Now().UTC().Format(time.RFC3339), profileID, noteID,
	)
	if err != nil {
		return fmt.Errorf("setting mint nft for note %d/%d: %w", profileID, noteID, err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Issuance contract (mint NFT) table accessors. Each deployed instance is a
// row keyed by its generated address, with its own token id sequence.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/iavl/crossbell/pkg/types"
)

// InsertMintNFT records a freshly deployed issuance contract instance.
func (s *Store) InsertMintNFT(tx *sql.Tx, nft *types.MintNFT) error {
	_, err := tx.Exec(
		"INSERT INTO mint_nfts (address, profile_id, note_id, next_token_id, created_at) VALUES (?, ?, ?, ?, ?)",
		string(nft.Address), nft.ProfileID, nft.NoteID, nft.NextTokenID,
		nft.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting mint nft %s: %w", nft.Address, err)
	}
	return nil
}

// NextTokenID consumes and returns the contract's next token id within the
// transaction. Token ids start at 1 and follow mint-call order.
func (s *Store) NextTokenID(tx *sql.Tx, addr types.Address) (uint64, error) {
	var next uint64
	err := tx.QueryRow(
		"SELECT next_token_id FROM mint_nfts WHERE address = ?", string(addr),
	).Scan(&next)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, types.ErrTokenNotFound
		}
		return 0, fmt.Errorf("reading next token id for %s: %w", addr, err)
	}

	_, err = tx.Exec(
		"UPDATE mint_nfts SET next_token_id = ? WHERE address = ?", next+1, string(addr),
	)
	if err != nil {
		return 0, fmt.Errorf("advancing token id for %s: %w", addr, err)
	}
	return next, nil
}

// InsertToken records the issuance of one token to its owner.
func (s *Store) InsertToken(tx *sql.Tx, addr types.Address, tokenID uint64, owner types.Address) error {
	_, err := tx.Exec(
		"INSERT INTO mint_tokens (address, token_id, owner, created_at) VALUES (?, ?, ?, ?)",
		string(addr), tokenID, string(owner), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting token %s/%d: %w", addr, tokenID, err)
	}
	return nil
}

// TokenOwner returns the owner of a minted token, or ErrTokenNotFound.
func (s *Store) TokenOwner(addr types.Address, tokenID uint64) (types.Address, error) {
	if !s.Attached() {
		return types.AddressZero, types.ErrDetached
	}
	var owner string
	err := s.db.QueryRow(
		"SELECT owner FROM mint_tokens WHERE address = ? AND token_id = ?",
		string(addr), tokenID,
	).Scan(&owner)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.AddressZero, types.ErrTokenNotFound
		}
		return types.AddressZero, fmt.Errorf("getting owner of %s/%d: %w", addr, tokenID, err)
	}
	return types.Address(owner), nil
}

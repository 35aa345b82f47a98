// Mint orchestration. Minting is open to any caller; the note's mint
// module, not ownership, is the gate. The issuance contract is deployed
// lazily on the first successful mint and never redeployed.
package entry

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iavl/crossbell/pkg/types"
)

// MintNote issues one unit of the note's issuance contract to the
// recipient. Returns the contract address and the minted token id.
func (e *Entry) MintNote(caller types.Address, profileID, noteID uint64, to types.Address, data string) (types.Address, uint64, error) {
	e.opMu.Lock()
	defer e.opMu.Unlock()

	if to.IsZero() {
		return types.AddressZero, 0, types.ErrInvalidData
	}

	note, err := e.store.GetNote(profileID, noteID)
	if err != nil {
		return types.AddressZero, 0, err
	}
	if note.Deleted {
		return types.AddressZero, 0, types.ErrNoteDeleted
	}

	// The mint module decides before any side effect, so a rejection on a
	// never-minted note leaves no contract deployed.
	if !note.MintModule.IsZero() {
		m, ok := e.mintModules[note.MintModule]
		if !ok {
			return types.AddressZero, 0, types.ErrModuleNotFound
		}
		if err := m.ProcessMint(caller, profileID, noteID, to, data); err != nil {
			return types.AddressZero, 0, err
		}
	}

	tx, err := e.store.Begin()
	if err != nil {
		return types.AddressZero, 0, err
	}
	defer tx.Rollback()

	nftAddr := note.MintNFT
	if nftAddr.IsZero() {
		nftAddr, err = e.deployMintNFT(tx, profileID, noteID)
		if err != nil {
			return types.AddressZero, 0, err
		}
	}

	tokenID, err := e.store.NextTokenID(tx, nftAddr)
	if err != nil {
		return types.AddressZero, 0, err
	}
	if err := e.store.InsertToken(tx, nftAddr, tokenID, to); err != nil {
		return types.AddressZero, 0, err
	}

	ev := types.Event{
		Name:      types.EventNoteMinted,
		Caller:    caller,
		ProfileID: profileID,
		NoteID:    noteID,
		NFT:       nftAddr,
		TokenID:   tokenID,
		To:        to,
	}
	if err := e.store.AppendEvent(tx, &ev); err != nil {
		return types.AddressZero, 0, err
	}

	if err := tx.Commit(); err != nil {
		return types.AddressZero, 0, fmt.Errorf("committing mint: %w", err)
	}
	e.persistAndLog(ev, "notes", "mint_nfts", "mint_tokens", "counters", "events")
	return nftAddr, tokenID, nil
}

// deployMintNFT clones a fresh issuance contract instance for the note and
// records its address on the note row. Runs at most once per note: callers
// only reach this when the note has no contract yet, and the address is
// immutable once set.
func (e *Entry) deployMintNFT(tx *sql.Tx, profileID, noteID uint64) (types.Address, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return types.AddressZero, fmt.Errorf("generating contract address: %w", err)
	}
	addr := types.Address(id.String())

	nft := &types.MintNFT{
		Address:     addr,
		ProfileID:   profileID,
		NoteID:      noteID,
		NextTokenID: 1,
		CreatedAt:   time.Now().UTC(),
	}
	if err := e.store.InsertMintNFT(tx, nft); err != nil {
		return types.AddressZero, err
	}
	if err := e.store.SetNoteMintNFT(tx, profileID, noteID, addr); err != nil {
		return types.AddressZero, err
	}
	return addr, nil
}

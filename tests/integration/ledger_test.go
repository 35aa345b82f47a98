// Integration tests for the full ledger surface through the public API:
// profile creation, linking, note posting with link bindings, lazy
// issuance contract deployment, open minting, and approval-gated minting.
package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iavl/crossbell/internal/modules"
	"github.com/iavl/crossbell/pkg/entry"
	"github.com/iavl/crossbell/pkg/types"
)

// newAttachedLedger returns an attached ledger over a fresh temp dir.
func newAttachedLedger(t *testing.T) types.Entry {
	t.Helper()
	e := entry.New(nil)
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}
	require.NoError(t, e.Attach(config))
	t.Cleanup(func() { e.Detach() })
	return e
}

func TestNoteAndMintLifecycle(t *testing.T) {
	e := newAttachedLedger(t)

	alice, err := e.CreateProfile("alice", "alice.handle", "ipfs://alice")
	require.NoError(t, err)
	bob, err := e.CreateProfile("bob", "bob.handle", "ipfs://bob")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), alice)
	assert.Equal(t, uint64(2), bob)

	// Alice follows bob; her linklist is created on this first link.
	require.NoError(t, e.LinkProfile("alice", alice, bob, "follow", ""))
	listID, err := e.GetLinklistID(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), listID)

	// A plain note, then a note bound to the follow link.
	noteID, err := e.PostNote("alice", types.PostNoteData{
		ProfileID:  alice,
		ContentURI: "ipfs://note-content",
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), noteID, "note ids start at 1 per profile")

	boundID, err := e.PostNote4ProfileLink("alice", types.PostNoteData{
		ProfileID:  alice,
		ContentURI: "ipfs://bound-content",
	}, bob, "follow")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), boundID)

	bound, err := e.GetNote(alice, boundID)
	require.NoError(t, err)
	assert.Equal(t, types.LinkItemTypeProfile, bound.LinkItemType)
	assert.Equal(t, listID, bound.LinklistID)
	assert.Equal(t, "profile:2", bound.LinkKey)

	// First mint deploys the contract; token ids follow mint order.
	nft, token1, err := e.MintNote("bob", alice, noteID, "bob", "")
	require.NoError(t, err)
	assert.NotEmpty(t, nft)
	assert.Equal(t, uint64(1), token1)

	nft2, token2, err := e.MintNote("carol", alice, noteID, "carol", "")
	require.NoError(t, err)
	assert.Equal(t, nft, nft2, "contract deployed once per note")
	assert.Equal(t, uint64(2), token2)

	owner1, err := e.OwnerOf(nft, 1)
	require.NoError(t, err)
	assert.Equal(t, types.Address("bob"), owner1)
	owner2, err := e.OwnerOf(nft, 2)
	require.NoError(t, err)
	assert.Equal(t, types.Address("carol"), owner2)

	// The note records its contract.
	note, err := e.GetNote(alice, noteID)
	require.NoError(t, err)
	assert.Equal(t, nft, note.MintNFT)
}

func TestApprovalMintScenario(t *testing.T) {
	e := newAttachedLedger(t)

	mod := modules.NewApprovalMintModule()
	require.NoError(t, e.RegisterMintModule("module:approval-mint", mod))

	alice, err := e.CreateProfile("alice", "alice.handle", "")
	require.NoError(t, err)

	noteID, err := e.PostNote("alice", types.PostNoteData{
		ProfileID:      alice,
		ContentURI:     "ipfs://gated",
		MintModule:     "module:approval-mint",
		MintModuleData: `["bob","carol"]`,
	})
	require.NoError(t, err)

	// An unlisted recipient is rejected before anything is deployed.
	_, _, err = e.MintNote("dave", alice, noteID, "dave", "")
	assert.ErrorIs(t, err, types.ErrMintNotApproved)

	note, err := e.GetNote(alice, noteID)
	require.NoError(t, err)
	assert.True(t, note.MintNFT.IsZero(), "rejected first mint must not deploy")

	// Listed recipients mint in order.
	nft, token1, err := e.MintNote("bob", alice, noteID, "bob", "")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), token1)
	_, token2, err := e.MintNote("carol", alice, noteID, "carol", "")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), token2)

	owner, err := e.OwnerOf(nft, 1)
	require.NoError(t, err)
	assert.Equal(t, types.Address("bob"), owner)
}

func TestLedgerSurvivesRestart(t *testing.T) {
	config := types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}

	e := entry.New(nil)
	require.NoError(t, e.Attach(config))

	alice, err := e.CreateProfile("alice", "alice.handle", "")
	require.NoError(t, err)
	bob, err := e.CreateProfile("bob", "bob.handle", "")
	require.NoError(t, err)
	require.NoError(t, e.LinkProfile("alice", alice, bob, "follow", ""))

	noteID, err := e.PostNote("alice", types.PostNoteData{ProfileID: alice, ContentURI: "ipfs://x"})
	require.NoError(t, err)
	nft, tokenID, err := e.MintNote("bob", alice, noteID, "bob", "")
	require.NoError(t, err)
	require.NoError(t, e.Detach())

	// A fresh engine over the same data dir sees everything.
	e2 := entry.New(nil)
	require.NoError(t, e2.Attach(config))
	defer e2.Detach()

	owner, err := e2.ProfileOwner(alice)
	require.NoError(t, err)
	assert.Equal(t, types.Address("alice"), owner)

	items, err := e2.Links(alice, "follow")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, bob, items[0].ToProfileID)

	note, err := e2.GetNote(alice, noteID)
	require.NoError(t, err)
	assert.Equal(t, "ipfs://x", note.ContentURI)
	assert.Equal(t, nft, note.MintNFT)

	tokenOwner, err := e2.OwnerOf(nft, tokenID)
	require.NoError(t, err)
	assert.Equal(t, types.Address("bob"), tokenOwner)

	// Sequences continue past reload instead of restarting.
	carol, err := e2.CreateProfile("carol", "carol.handle", "")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), carol)

	nextNote, err := e2.PostNote("alice", types.PostNoteData{ProfileID: alice, ContentURI: "ipfs://y"})
	require.NoError(t, err)
	assert.Equal(t, noteID+1, nextNote)

	// The event log survives too.
	events, err := e2.Events(0)
	require.NoError(t, err)
	assert.NotEmpty(t, events)
	for i := 1; i < len(events); i++ {
		assert.Greater(t, events[i].Seq, events[i-1].Seq, "events ordered by seq")
	}
}

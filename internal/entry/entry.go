// Package entry implements the ledger engine: a single-writer applier over
// the SQLite store that exposes the profile registrar, link graph, note
// store, and mint orchestrator operations. Operations are serialized by one
// lock, run in one transaction each, and unwind completely on any failure.
package entry

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/iavl/crossbell/internal/sqlite"
	"github.com/iavl/crossbell/pkg/types"
)

var _ types.Entry = (*Entry)(nil)

// Entry is the engine. The zero value is not usable; construct with New.
type Entry struct {
	// The store serializes attach/detach itself; opMu is the single-writer
	// gate ordering operations into the ledger.
	opMu sync.RWMutex

	store *sqlite.Store
	log   *zap.Logger

	linkModules map[types.Address]types.LinkModule
	mintModules map[types.Address]types.MintModule

	// categoryModules binds a category to a registered link module address.
	categoryModules map[string]types.Address
}

// New creates an unattached engine. A nil logger disables logging.
func New(log *zap.Logger) *Entry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Entry{
		store:           sqlite.NewStore(),
		log:             log,
		linkModules:     make(map[types.Address]types.LinkModule),
		mintModules:     make(map[types.Address]types.MintModule),
		categoryModules: make(map[string]types.Address),
	}
}

// Attach initializes the engine's store with the given configuration.
func (e *Entry) Attach(config types.Config) error {
	e.opMu.Lock()
	defer e.opMu.Unlock()
	return e.store.Attach(config)
}

// Detach releases the store. Idempotent.
func (e *Entry) Detach() error {
	e.opMu.Lock()
	defer e.opMu.Unlock()
	return e.store.Detach()
}

// CreateProfile registers a new profile and returns its id.
func (e *Entry) CreateProfile(owner types.Address, handle, uri string) (uint64, error) {
	e.opMu.Lock()
	defer e.opMu.Unlock()

	if owner.IsZero() || handle == "" {
		return 0, types.ErrInvalidData
	}

	tx, err := e.store.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	profileID, err := e.store.NextProfileID(tx)
	if err != nil {
		return 0, err
	}
	profile := &types.Profile{
		ProfileID:  profileID,
		Owner:      owner,
		Handle:     handle,
		URI:        uri,
		NextNoteID: 1,
		CreatedAt:  time.Now().UTC(),
	}
	if err := e.store.InsertProfile(tx, profile); err != nil {
		return 0, err
	}

	ev := types.Event{
		Name:      types.EventProfileCreated,
		Caller:    owner,
		ProfileID: profileID,
	}
	if err := e.store.AppendEvent(tx, &ev); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing profile creation: %w", err)
	}
	e.persistAndLog(ev, "profiles", "counters", "events")
	return profileID, nil
}

// ProfileOwner returns the controlling address of a profile.
func (e *Entry) ProfileOwner(profileID uint64) (types.Address, error) {
	e.opMu.RLock()
	defer e.opMu.RUnlock()

	profile, err := e.store.GetProfile(profileID)
	if err != nil {
		return types.AddressZero, err
	}
	return profile.Owner, nil
}

// GetLinklistID returns the profile's linklist id.
func (e *Entry) GetLinklistID(profileID uint64) (uint64, error) {
	e.opMu.RLock()
	defer e.opMu.RUnlock()
	return e.store.GetLinklistID(profileID)
}

// Links enumerates the profile's link items under a category in insertion
// order. A profile that has never linked has no items under any category.
func (e *Entry) Links(profileID uint64, category string) ([]types.LinkItem, error) {
	e.opMu.RLock()
	defer e.opMu.RUnlock()

	linklistID, err := e.store.GetLinklistID(profileID)
	if err != nil {
		if err == types.ErrLinklistNotFound {
			return []types.LinkItem{}, nil
		}
		return nil, err
	}
	return e.store.LinkItems(linklistID, category)
}

// Events returns all events with Seq greater than sinceSeq.
func (e *Entry) Events(sinceSeq uint64) ([]types.Event, error) {
	e.opMu.RLock()
	defer e.opMu.RUnlock()
	return e.store.EventsSince(sinceSeq)
}

// OwnerOf returns the owner of a minted token.
func (e *Entry) OwnerOf(nft types.Address, tokenID uint64) (types.Address, error) {
	e.opMu.RLock()
	defer e.opMu.RUnlock()
	return e.store.TokenOwner(nft, tokenID)
}

// RegisterLinkModule makes a link module addressable by the ledger.
func (e *Entry) RegisterLinkModule(addr types.Address, m types.LinkModule) error {
	e.opMu.Lock()
	defer e.opMu.Unlock()

	if addr.IsZero() || m == nil {
		return types.ErrInvalidData
	}
	e.linkModules[addr] = m
	return nil
}

// RegisterMintModule makes a mint module addressable by the ledger.
func (e *Entry) RegisterMintModule(addr types.Address, m types.MintModule) error {
	e.opMu.Lock()
	defer e.opMu.Unlock()

	if addr.IsZero() || m == nil {
		return types.ErrInvalidData
	}
	e.mintModules[addr] = m
	return nil
}

// SetLinkModule binds a registered link module to a category. AddressZero
// clears the binding. Collaborator-managed configuration; not owner-gated.
func (e *Entry) SetLinkModule(category string, addr types.Address) error {
	e.opMu.Lock()
	defer e.opMu.Unlock()

	if addr.IsZero() {
		delete(e.categoryModules, category)
		return nil
	}
	if _, ok := e.linkModules[addr]; !ok {
		return types.ErrModuleNotFound
	}
	e.categoryModules[category] = addr
	return nil
}

// persistAndLog rewrites the JSONL mirrors touched by a committed mutation
// and logs the event. Both are post-commit and best-effort: a mirror or log
// failure cannot unwind the commit, so it is logged and swallowed.
func (e *Entry) persistAndLog(ev types.Event, tables ...string) {
	if err := e.store.Persist(tables...); err != nil {
		e.log.Error("persisting JSONL mirrors", zap.Error(err))
	}
	e.log.Info(ev.Name,
		zap.Uint64("seq", ev.Seq),
		zap.String("caller", string(ev.Caller)),
		zap.Uint64("profile_id", ev.ProfileID),
		zap.Uint64("note_id", ev.NoteID),
		zap.Uint64("linklist_id", ev.LinklistID),
		zap.String("category", ev.Category),
		zap.String("link_key", ev.LinkKey),
		zap.String("nft", string(ev.NFT)),
		zap.Uint64("token_id", ev.TokenID),
		zap.String("to", string(ev.To)),
	)
}

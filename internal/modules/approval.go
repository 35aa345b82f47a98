// Package modules provides module implementations that exercise the hook
// contract the ledger engine requires of externally supplied link and mint
// modules. Modules keep their own state outside the ledger and can only
// accept or reject through their return values.
package modules

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/iavl/crossbell/pkg/types"
)

// ErrLinkNotApproved is returned by ApprovalLinkModule for targets outside
// its allow list.
var ErrLinkNotApproved = errors.New("link not approved by link module")

var _ types.MintModule = (*ApprovalMintModule)(nil)

// noteKey identifies a note across profiles.
type noteKey struct {
	profileID uint64
	noteID    uint64
}

// ApprovalMintModule approves mints only for recipients named in the
// note's init data, a JSON array of addresses.
type ApprovalMintModule struct {
	mu       sync.Mutex
	approved map[noteKey]map[types.Address]bool
}

// NewApprovalMintModule creates an empty approval mint module.
func NewApprovalMintModule() *ApprovalMintModule {
	return &ApprovalMintModule{
		approved: make(map[noteKey]map[types.Address]bool),
	}
}

// InitializeMintModule parses the note's approved recipient list.
func (m *ApprovalMintModule) InitializeMintModule(profileID, noteID uint64, data string) error {
	var addrs []types.Address
	if err := json.Unmarshal([]byte(data), &addrs); err != nil {
		return fmt.Errorf("parsing approved list: %w", err)
	}

	set := make(map[types.Address]bool, len(addrs))
	for _, a := range addrs {
		set[a] = true
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.approved[noteKey{profileID, noteID}] = set
	return nil
}

// ProcessMint rejects recipients that are not on the note's approved list.
func (m *ApprovalMintModule) ProcessMint(caller types.Address, profileID, noteID uint64, to types.Address, data string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.approved[noteKey{profileID, noteID}][to] {
		return types.ErrMintNotApproved
	}
	return nil
}

// IsApproved reports whether the recipient is on the note's approved list.
func (m *ApprovalMintModule) IsApproved(profileID, noteID uint64, to types.Address) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.approved[noteKey{profileID, noteID}][to]
}

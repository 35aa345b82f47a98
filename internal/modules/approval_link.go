package modules

import (
	"sync"

	"github.com/iavl/crossbell/pkg/types"
)

var _ types.LinkModule = (*ApprovalLinkModule)(nil)

// ApprovalLinkModule approves links only for targets whose encoded identity
// is on its allow list. Intended for category bindings where a collaborator
// curates which targets a category may reference.
type ApprovalLinkModule struct {
	mu      sync.Mutex
	allowed map[string]bool
}

// NewApprovalLinkModule creates the module with an initial allow list of
// encoded link item identities.
func NewApprovalLinkModule(keys ...string) *ApprovalLinkModule {
	allowed := make(map[string]bool, len(keys))
	for _, k := range keys {
		allowed[k] = true
	}
	return &ApprovalLinkModule{allowed: allowed}
}

// Allow adds an encoded identity to the allow list.
func (m *ApprovalLinkModule) Allow(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.allowed[key] = true
}

// InitializeLinkModule accepts any note binding; the allow list is managed
// through the module itself, not through per-note init data.
func (m *ApprovalLinkModule) InitializeLinkModule(profileID, noteID uint64, data string) error {
	return nil
}

// ProcessLink rejects targets outside the allow list.
func (m *ApprovalLinkModule) ProcessLink(caller types.Address, fromProfileID uint64, item types.LinkItem, data string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.allowed[item.Key()] {
		return ErrLinkNotApproved
	}
	return nil
}

package entry

import "github.com/iavl/crossbell/pkg/types"

// requireOwner validates that caller controls the profile. It runs before
// any state mutation, so a failed check leaves the ledger untouched.
// Returns ErrProfileNotFound for an unknown profile and ErrNotProfileOwner
// for a caller that is not the recorded controller.
func (e *Entry) requireOwner(profileID uint64, caller types.Address) error {
	profile, err := e.store.GetProfile(profileID)
	if err != nil {
		return err
	}
	if profile.Owner != caller {
		return types.ErrNotProfileOwner
	}
	return nil
}

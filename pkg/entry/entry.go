// Package entry provides the public API for the crossbell ledger engine.
// It exposes the factory function while keeping the engine internal.
package entry

import (
	"go.uber.org/zap"

	internal "github.com/iavl/crossbell/internal/entry"
	"github.com/iavl/crossbell/pkg/types"
)

// New creates an unattached ledger engine. A nil logger disables logging.
//
// Example:
//
//	e := entry.New(nil)
//	err := e.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".crossbell",
//	})
//	defer e.Detach()
func New(log *zap.Logger) types.Entry {
	return internal.New(log)
}

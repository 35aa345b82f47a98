// Package types defines the Entry interface, entity types, module
// interfaces, and standard errors for the crossbell link-graph and note
// ledger.
package types

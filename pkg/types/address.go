package types

// Address is an opaque identity string. It names callers, profile owners,
// mint recipients, registered modules, and deployed issuance contracts.
// Generated contract addresses are UUID v7 strings; caller-supplied
// addresses are treated as uninterpreted tags.
type Address string

// AddressZero is the "no address" sentinel. A note with no mint module
// stores AddressZero; a note that has never been minted stores AddressZero
// as its issuance contract.
const AddressZero Address = ""

// IsZero reports whether the address is the "no address" sentinel.
func (a Address) IsZero() bool {
	return a == AddressZero
}

package model

// Package model contains the domain types for the legal document registry:
// documents, their immutable versions, and the append-only acceptance ledger.
// No business logic here beyond trivial derived values.

// AdminPermission is the capability required for all administrative
// operations (creating documents, versions, publishing).
const AdminPermission = "administer entity legal"

// Account is the identity collaborator supplied by the caller. The service
// never consults ambient/global user state; every operation that needs the
// acting user takes an Account explicitly.
type Account interface {
	// ID returns the stable user identifier, empty for anonymous callers.
	ID() string
	// IsAuthenticated reports whether the account belongs to a signed-in user.
	IsAuthenticated() bool
	// HasCapability reports whether the account holds the named capability.
	HasCapability(name string) bool
}

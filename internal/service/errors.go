package service

import "errors"

// Request-level error taxonomy. Every error here is recoverable at the
// request boundary: the caller gets a structured response and stored state is
// unchanged. Anything else bubbling out of a service is a storage-adapter
// failure and passes through unmodified.
var (
	ErrIDRequired = errors.New("id is required")

	// ErrDuplicateID is returned when a document id is already taken.
	ErrDuplicateID = errors.New("document id already exists")

	// ErrDocumentNotFound / ErrVersionNotFound are lookups that missed.
	ErrDocumentNotFound = errors.New("document not found")
	ErrVersionNotFound  = errors.New("version not found")

	// ErrUnknownDocument / ErrUnknownVersion mark a write against a missing
	// parent row.
	ErrUnknownDocument = errors.New("unknown document")
	ErrUnknownVersion  = errors.New("unknown version")

	// ErrBundleMismatch is returned when publishing a version that belongs to
	// a different document.
	ErrBundleMismatch = errors.New("version belongs to a different document")

	// ErrNoPublishedVersion is returned when accepting a document that has
	// nothing published.
	ErrNoPublishedVersion = errors.New("document has no published version")

	// ErrVersionFrozen is returned when editing a version that already has
	// recorded acceptances. The text a user agreed to must not change.
	ErrVersionFrozen = errors.New("version has recorded acceptances and is immutable")

	// ErrDocumentInUse is returned when deleting a document whose versions
	// carry acceptances. The ledger must stay queryable.
	ErrDocumentInUse = errors.New("document has recorded acceptances")

	// ErrUnauthorized is returned when the acting account is anonymous where
	// an identity is required.
	ErrUnauthorized = errors.New("authentication required")
)

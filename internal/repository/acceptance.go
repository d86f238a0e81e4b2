package repository

import (
	"context"

	"legalapi/internal/model"
)

// AcceptanceRepository defines data access for the append-only acceptance
// ledger. There is deliberately no update or single-row delete: acceptances
// are immutable once written.
type AcceptanceRepository interface {
	// Create inserts a new acceptance row and returns it with the assigned
	// id. Each insert is an independent single-row statement; concurrent
	// writers for unrelated users never contend. Returns ErrReferenceNotFound
	// if the version does not exist.
	Create(ctx context.Context, a *model.Acceptance) (*model.Acceptance, error)

	// ListByVersion returns acceptances recorded against a version, oldest
	// first. A non-empty userID filters to that user.
	ListByVersion(ctx context.Context, versionID, userID string) ([]model.Acceptance, error)

	// ListByDocument returns acceptances for a document grouped by version
	// id. When publishedOnly is true only the currently published version is
	// queried; otherwise all versions of the document are.
	ListByDocument(ctx context.Context, documentID, userID string, publishedOnly bool) (map[string][]model.Acceptance, error)

	// ExistsForVersion reports whether the user has at least one acceptance
	// against the given version.
	ExistsForVersion(ctx context.Context, versionID, userID string) (bool, error)

	// ExistsForDocument reports whether any acceptance exists against any
	// version of the document.
	ExistsForDocument(ctx context.Context, documentID string) (bool, error)
}

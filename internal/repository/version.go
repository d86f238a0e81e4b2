package repository

import (
	"context"

	"legalapi/internal/model"
)

// VersionRepository defines data access for document versions.
type VersionRepository interface {
	// Create inserts a new version row. Returns ErrReferenceNotFound if the
	// owning document does not exist.
	Create(ctx context.Context, v *model.DocumentVersion) (*model.DocumentVersion, error)

	// FindByID returns a version by its ID.
	FindByID(ctx context.Context, id string) (*model.DocumentVersion, error)

	// ListByDocument returns all versions of a document, published or not,
	// newest-first by creation time.
	ListByDocument(ctx context.Context, documentID string) ([]model.DocumentVersion, error)

	// Update persists label, acceptance label and body of a version and bumps
	// changed_at. The update is guarded: it returns ErrRowFrozen once any
	// acceptance has been recorded against the version.
	Update(ctx context.Context, v *model.DocumentVersion) (*model.DocumentVersion, error)
}

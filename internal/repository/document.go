package repository

import (
	"context"

	"legalapi/internal/model"
)

// DocumentRepository defines data access for legal documents using SQL
// queries only. No business logic here — strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document record.
	// Returns ErrDuplicateKey if a document with the same id already exists.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// FindDetail returns a document together with its published version, read
	// in a single statement so the pointer and the version row are one
	// consistent snapshot. PublishedVersion is nil when nothing is published.
	FindDetail(ctx context.Context, id string) (*DocumentDetail, error)

	// List returns a page of documents ordered by label and the total count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Document], error)

	// SetPublishedVersion atomically points the document at the given version.
	// The update is guarded so the pointer can never reference a version of a
	// different document, not even transiently. Returns ErrVersionMismatch
	// when the version exists but belongs to another document.
	SetPublishedVersion(ctx context.Context, documentID, versionID string) (*model.Document, error)

	// Save persists mutable document fields (label, flags, settings).
	Save(ctx context.Context, doc *model.Document) (*model.Document, error)

	// Delete removes a document by ID. Version rows cascade; acceptance rows
	// do not, so deleting a document whose versions carry acceptances fails.
	Delete(ctx context.Context, id string) error
}

// DocumentDetail pairs a document with its currently published version.
type DocumentDetail struct {
	Document         model.Document
	PublishedVersion *model.DocumentVersion
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"legalapi/internal/model"
	"legalapi/internal/render"
	"legalapi/internal/repository"
)

// CreateVersionInput carries the admin-supplied fields for a new version.
type CreateVersionInput struct {
	Label           string `json:"label"`
	AcceptanceLabel string `json:"acceptance_label"`
	Body            string `json:"body"`
	LanguageCode    string `json:"language_code"`
}

// UpdateVersionInput carries partial edits to an existing version. Nil fields
// are left unchanged.
type UpdateVersionInput struct {
	Label           *string `json:"label"`
	AcceptanceLabel *string `json:"acceptance_label"`
	Body            *string `json:"body"`
	LanguageCode    *string `json:"language_code"`
}

// VersionService defines the use cases of the version store.
type VersionService interface {
	// Create adds a version under a document. Fails with ErrUnknownDocument
	// if the document does not exist.
	Create(ctx context.Context, documentID string, in CreateVersionInput) (*model.DocumentVersion, error)

	// Get returns a single version by its ID.
	Get(ctx context.Context, id string) (*model.DocumentVersion, error)

	// ListByDocument returns all versions of a document, newest-first.
	ListByDocument(ctx context.Context, documentID string) ([]model.DocumentVersion, error)

	// Update edits a version. Versions with recorded acceptances are frozen
	// and fail with ErrVersionFrozen.
	Update(ctx context.Context, versionID string, in UpdateVersionInput) (*model.DocumentVersion, error)

	// ResolveAcceptanceLabel substitutes the document label into the
	// version's acceptance-label template and strips unsafe markup.
	ResolveAcceptanceLabel(v *model.DocumentVersion, doc *model.Document) string
}

// versionService is a concrete implementation of VersionService.
type versionService struct {
	versions repository.VersionRepository
	docs     repository.DocumentRepository
}

// NewVersionService constructs a new VersionService.
func NewVersionService(versions repository.VersionRepository, docs repository.DocumentRepository) VersionService {
	return &versionService{versions: versions, docs: docs}
}

func (s *versionService) Create(ctx context.Context, documentID string, in CreateVersionInput) (*model.DocumentVersion, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}
	if in.AcceptanceLabel == "" {
		in.AcceptanceLabel = model.DefaultAcceptanceLabel
	}

	v := &model.DocumentVersion{
		ID:              uuid.New().String(),
		DocumentID:      documentID,
		Label:           in.Label,
		AcceptanceLabel: in.AcceptanceLabel,
		Body:            in.Body,
		LanguageCode:    in.LanguageCode,
		CreatedAt:       time.Now().UTC(),
	}
	stored, err := s.versions.Create(ctx, v)
	if err != nil {
		if errors.Is(err, repository.ErrReferenceNotFound) {
			return nil, ErrUnknownDocument
		}
		return nil, err
	}
	return stored, nil
}

func (s *versionService) Get(ctx context.Context, id string) (*model.DocumentVersion, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	v, err := s.versions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVersionNotFound
		}
		return nil, err
	}
	return v, nil
}

func (s *versionService) ListByDocument(ctx context.Context, documentID string) ([]model.DocumentVersion, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}
	if _, err := s.docs.FindByID(ctx, documentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnknownDocument
		}
		return nil, err
	}
	return s.versions.ListByDocument(ctx, documentID)
}

func (s *versionService) Update(ctx context.Context, versionID string, in UpdateVersionInput) (*model.DocumentVersion, error) {
	current, err := s.Get(ctx, versionID)
	if err != nil {
		return nil, err
	}

	if in.Label != nil {
		current.Label = *in.Label
	}
	if in.AcceptanceLabel != nil {
		current.AcceptanceLabel = *in.AcceptanceLabel
	}
	if in.Body != nil {
		current.Body = *in.Body
	}
	if in.LanguageCode != nil {
		current.LanguageCode = *in.LanguageCode
	}

	updated, err := s.versions.Update(ctx, current)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRowFrozen):
			return nil, ErrVersionFrozen
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrVersionNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *versionService) ResolveAcceptanceLabel(v *model.DocumentVersion, doc *model.Document) string {
	if v == nil || doc == nil {
		return ""
	}
	return render.AcceptanceLabel(v.AcceptanceLabel, doc.Label)
}

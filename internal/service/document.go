package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"legalapi/internal/model"
	"legalapi/internal/render"
	"legalapi/internal/repository"
	"legalapi/internal/storage"
)

// evidenceURLExpiry bounds how long a presigned snapshot link stays valid.
const evidenceURLExpiry = 15 * time.Minute

// CreateDocumentInput carries the admin-supplied fields for a new document.
type CreateDocumentInput struct {
	ID              string                 `json:"id"`
	Label           string                 `json:"label"`
	RequireSignup   bool                   `json:"require_signup"`
	RequireExisting bool                   `json:"require_existing"`
	Settings        model.DocumentSettings `json:"settings"`
}

// UpdateDocumentInput carries the admin-editable document fields. Nil fields
// keep their stored value.
type UpdateDocumentInput struct {
	Label           *string                 `json:"label"`
	RequireSignup   *bool                   `json:"require_signup"`
	RequireExisting *bool                   `json:"require_existing"`
	Settings        *model.DocumentSettings `json:"settings"`
}

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// PublishedVersionView is the published version as presented to end users:
// body sanitized, acceptance label resolved against the document label.
type PublishedVersionView struct {
	ID              string    `json:"id"`
	Label           string    `json:"label"`
	AcceptanceLabel string    `json:"acceptance_label"`
	Body            string    `json:"body"`
	LanguageCode    string    `json:"language_code,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// DocumentDetail is a document with its rendered published version and the
// acceptance state of the requesting account.
type DocumentDetail struct {
	Document         model.Document        `json:"document"`
	PublishedVersion *PublishedVersionView `json:"published_version,omitempty"`
	MustAgree        bool                  `json:"must_agree"`
	HasAgreed        bool                  `json:"has_agreed"`
}

// DocumentService defines the use cases of the document registry.
type DocumentService interface {
	// Create registers a new document and provisions its initial empty
	// version, so a document always has at least one version to edit.
	Create(ctx context.Context, in CreateDocumentInput) (*model.Document, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.Document, error)

	// GetDetail returns the document with its rendered published version and
	// the must-agree / has-agreed state for the given account.
	GetDetail(ctx context.Context, id string, account model.Account, isNewUser bool) (*DocumentDetail, error)

	// List returns documents ordered by label using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*DocumentListResult, error)

	// Update rewrites the mutable document fields. The published version
	// pointer is not touched; use Publish for that.
	Update(ctx context.Context, id string, in UpdateDocumentInput) (*model.Document, error)

	// Publish points the document at the given version. Existing acceptances
	// stay attached to their original versions forever.
	Publish(ctx context.Context, documentID, versionID string) (*model.Document, error)

	// Delete removes a document and its versions. Documents with recorded
	// acceptances are refused.
	Delete(ctx context.Context, id string) error

	// EvidenceURL returns a time-limited link to the archived body snapshot
	// of a previously published version.
	EvidenceURL(ctx context.Context, documentID, versionID string) (string, error)
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	docs        repository.DocumentRepository
	versions    repository.VersionRepository
	acceptances repository.AcceptanceRepository
	archive     *storage.EvidenceArchive
	policy      *PolicyEvaluator
	labels      *labelCache
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(
	docs repository.DocumentRepository,
	versions repository.VersionRepository,
	acceptances repository.AcceptanceRepository,
	archive *storage.EvidenceArchive,
	policy *PolicyEvaluator,
) DocumentService {
	return &documentService{
		docs:        docs,
		versions:    versions,
		acceptances: acceptances,
		archive:     archive,
		policy:      policy,
		labels:      newLabelCache(),
	}
}

func (s *documentService) Create(ctx context.Context, in CreateDocumentInput) (*model.Document, error) {
	if in.ID == "" {
		return nil, ErrIDRequired
	}
	if in.Label == "" {
		in.Label = in.ID
	}

	now := time.Now().UTC()
	doc := &model.Document{
		ID:              in.ID,
		Label:           in.Label,
		RequireSignup:   in.RequireSignup,
		RequireExisting: in.RequireExisting,
		Settings:        in.Settings,
		CreatedAt:       now,
	}
	stored, err := s.docs.Create(ctx, doc)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateID
		}
		return nil, err
	}

	// Provision the initial empty version.
	initial := &model.DocumentVersion{
		ID:              uuid.New().String(),
		DocumentID:      stored.ID,
		Label:           stored.Label,
		AcceptanceLabel: model.DefaultAcceptanceLabel,
		CreatedAt:       now,
	}
	if _, err := s.versions.Create(ctx, initial); err != nil {
		// Roll back the document row so creation stays all-or-nothing.
		if delErr := s.docs.Delete(ctx, stored.ID); delErr != nil {
			return nil, fmt.Errorf("provision initial version failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("provision initial version failed: %w", err)
	}
	return stored, nil
}

func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) GetDetail(ctx context.Context, id string, account model.Account, isNewUser bool) (*DocumentDetail, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	detail, err := s.docs.FindDetail(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	out := &DocumentDetail{Document: detail.Document}
	if v := detail.PublishedVersion; v != nil {
		out.PublishedVersion = &PublishedVersionView{
			ID:              v.ID,
			Label:           v.Label,
			AcceptanceLabel: s.acceptanceLabel(&detail.Document, v),
			Body:            render.Body(v.Body),
			LanguageCode:    v.LanguageCode,
			CreatedAt:       v.CreatedAt,
		}
	}

	out.MustAgree = s.policy.MustAgree(&detail.Document, isNewUser, account)
	if account != nil && account.IsAuthenticated() && detail.PublishedVersion != nil {
		// Checked against the version id from the same snapshot the pointer
		// came from, so a concurrent publish cannot skew the answer.
		agreed, err := s.acceptances.ExistsForVersion(ctx, detail.PublishedVersion.ID, account.ID())
		if err != nil {
			return nil, err
		}
		out.HasAgreed = agreed
	}
	return out, nil
}

// acceptanceLabel resolves and caches the published acceptance label.
func (s *documentService) acceptanceLabel(doc *model.Document, v *model.DocumentVersion) string {
	fingerprint := v.ID + "@" + v.ChangedAt.UTC().Format(time.RFC3339Nano)
	if label, ok := s.labels.get(doc.ID, fingerprint); ok {
		return label
	}
	label := render.AcceptanceLabel(v.AcceptanceLabel, doc.Label)
	s.labels.set(doc.ID, fingerprint, label)
	return label
}

// List returns paginated documents without exposing repository types.
func (s *documentService) List(ctx context.Context, limit, offset int) (*DocumentListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.docs.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *documentService) Update(ctx context.Context, id string, in UpdateDocumentInput) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}

	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	if in.Label != nil && *in.Label != "" {
		doc.Label = *in.Label
	}
	if in.RequireSignup != nil {
		doc.RequireSignup = *in.RequireSignup
	}
	if in.RequireExisting != nil {
		doc.RequireExisting = *in.RequireExisting
	}
	if in.Settings != nil {
		doc.Settings = *in.Settings
	}

	stored, err := s.docs.Save(ctx, doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	// Cached acceptance labels embed the old document label.
	s.labels.invalidate(id)
	return stored, nil
}

func (s *documentService) Publish(ctx context.Context, documentID, versionID string) (*model.Document, error) {
	if documentID == "" || versionID == "" {
		return nil, ErrIDRequired
	}

	v, err := s.versions.FindByID(ctx, versionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVersionNotFound
		}
		return nil, err
	}
	if v.DocumentID != documentID {
		return nil, ErrBundleMismatch
	}

	// Archive the rendered body before the pointer moves; the snapshot is
	// the durable record of what users are about to agree to.
	if _, err := s.archive.PutSnapshot(ctx, documentID, v.ID, render.Body(v.Body)); err != nil {
		return nil, fmt.Errorf("archive evidence snapshot: %w", err)
	}

	doc, err := s.docs.SetPublishedVersion(ctx, documentID, versionID)
	if err != nil {
		if delErr := s.archive.DeleteSnapshot(ctx, documentID, v.ID); delErr != nil {
			return nil, fmt.Errorf("publish failed: %v; snapshot rollback failed: %v", err, delErr)
		}
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrDocumentNotFound
		case errors.Is(err, repository.ErrVersionMismatch):
			return nil, ErrBundleMismatch
		}
		return nil, err
	}

	s.labels.invalidate(documentID)
	return doc, nil
}

func (s *documentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	inUse, err := s.acceptances.ExistsForDocument(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return ErrDocumentInUse
	}

	if err := s.docs.Delete(ctx, id); err != nil {
		// The database enforces the same rule; a concurrent acceptance
		// between the check and the delete lands here.
		if errors.Is(err, repository.ErrRowInUse) {
			return ErrDocumentInUse
		}
		return err
	}
	s.labels.invalidate(id)
	return nil
}

func (s *documentService) EvidenceURL(ctx context.Context, documentID, versionID string) (string, error) {
	if documentID == "" || versionID == "" {
		return "", ErrIDRequired
	}
	v, err := s.versions.FindByID(ctx, versionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrVersionNotFound
		}
		return "", err
	}
	if v.DocumentID != documentID {
		return "", ErrBundleMismatch
	}
	return s.archive.PresignSnapshot(ctx, documentID, versionID, evidenceURLExpiry)
}

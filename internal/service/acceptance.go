package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"legalapi/internal/model"
	"legalapi/internal/repository"
)

// AcceptanceService defines the use cases of the acceptance ledger.
type AcceptanceService interface {
	// Record appends an acceptance of the given version by the given user.
	// The ledger is append-only, repeat acceptances add rows.
	Record(ctx context.Context, versionID, userID string, at time.Time) (*model.Acceptance, error)

	// AcceptCurrent records an acceptance of the document's currently
	// published version on behalf of the account.
	AcceptCurrent(ctx context.Context, documentID string, account model.Account) (*model.Acceptance, error)

	// FindByVersion lists acceptances of one version, optionally scoped to
	// a single user (empty userID means all users).
	FindByVersion(ctx context.Context, versionID, userID string) ([]model.Acceptance, error)

	// FindByDocument lists acceptances across a document's versions grouped
	// by version ID. With publishedOnly set, only acceptances of the
	// currently published version are returned.
	FindByDocument(ctx context.Context, documentID, userID string, publishedOnly bool) (map[string][]model.Acceptance, error)

	// HasAccepted reports whether the user has accepted the document's
	// currently published version. A document with no published version has
	// nothing to accept, so the answer is false.
	HasAccepted(ctx context.Context, documentID, userID string) (bool, error)
}

type acceptanceService struct {
	acceptances repository.AcceptanceRepository
	versions    repository.VersionRepository
	docs        repository.DocumentRepository
}

// NewAcceptanceService constructs a new AcceptanceService.
func NewAcceptanceService(acceptances repository.AcceptanceRepository, versions repository.VersionRepository, docs repository.DocumentRepository) AcceptanceService {
	return &acceptanceService{acceptances: acceptances, versions: versions, docs: docs}
}

func (s *acceptanceService) Record(ctx context.Context, versionID, userID string, at time.Time) (*model.Acceptance, error) {
	if versionID == "" || userID == "" {
		return nil, ErrIDRequired
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}
	a := &model.Acceptance{
		VersionID:  versionID,
		UserID:     userID,
		AcceptedAt: at,
	}
	stored, err := s.acceptances.Create(ctx, a)
	if err != nil {
		if errors.Is(err, repository.ErrReferenceNotFound) {
			return nil, ErrUnknownVersion
		}
		return nil, err
	}
	return stored, nil
}

func (s *acceptanceService) AcceptCurrent(ctx context.Context, documentID string, account model.Account) (*model.Acceptance, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}
	if account == nil || !account.IsAuthenticated() {
		return nil, ErrUnauthorized
	}

	detail, err := s.docs.FindDetail(ctx, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	if detail.PublishedVersion == nil {
		return nil, ErrNoPublishedVersion
	}
	// Record against the version observed in the snapshot. A concurrent
	// republish makes the acceptance historical, never lost.
	return s.Record(ctx, detail.PublishedVersion.ID, account.ID(), time.Now().UTC())
}

func (s *acceptanceService) FindByVersion(ctx context.Context, versionID, userID string) ([]model.Acceptance, error) {
	if versionID == "" {
		return nil, ErrIDRequired
	}
	if _, err := s.versions.FindByID(ctx, versionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnknownVersion
		}
		return nil, err
	}
	return s.acceptances.ListByVersion(ctx, versionID, userID)
}

func (s *acceptanceService) FindByDocument(ctx context.Context, documentID, userID string, publishedOnly bool) (map[string][]model.Acceptance, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}
	if _, err := s.docs.FindByID(ctx, documentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnknownDocument
		}
		return nil, err
	}
	return s.acceptances.ListByDocument(ctx, documentID, userID, publishedOnly)
}

func (s *acceptanceService) HasAccepted(ctx context.Context, documentID, userID string) (bool, error) {
	if documentID == "" || userID == "" {
		return false, ErrIDRequired
	}
	detail, err := s.docs.FindDetail(ctx, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrDocumentNotFound
		}
		return false, err
	}
	if detail.PublishedVersion == nil {
		return false, nil
	}
	return s.acceptances.ExistsForVersion(ctx, detail.PublishedVersion.ID, userID)
}

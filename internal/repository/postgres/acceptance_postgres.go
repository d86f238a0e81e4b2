package postgres

import (
	"context"
	"database/sql"

	"legalapi/internal/model"
	"legalapi/internal/repository"
)

// AcceptancePostgres is a PostgreSQL implementation of
// repository.AcceptanceRepository. Inserts are independent single-row
// statements against a BIGSERIAL key, so concurrent acceptances by unrelated
// users never contend on shared locks.
type AcceptancePostgres struct {
	db *sql.DB
}

// NewAcceptancePostgres creates a new AcceptancePostgres repository.
func NewAcceptancePostgres(db *sql.DB) *AcceptancePostgres {
	return &AcceptancePostgres{db: db}
}

var _ repository.AcceptanceRepository = (*AcceptancePostgres)(nil)

const acceptanceColumns = `id, version_id, user_id, accepted_at`

func scanAcceptance(row interface{ Scan(...any) error }) (*model.Acceptance, error) {
	var a model.Acceptance
	if err := row.Scan(
		&a.ID,
		&a.VersionID,
		&a.UserID,
		&a.AcceptedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create appends a new acceptance row. Always an insert, never an upsert:
// repeated agreement by the same user yields additional rows with fresh ids.
func (r *AcceptancePostgres) Create(ctx context.Context, a *model.Acceptance) (*model.Acceptance, error) {
	const q = `
		INSERT INTO legal_document_acceptances (version_id, user_id, accepted_at)
		VALUES ($1, $2, $3)
		RETURNING ` + acceptanceColumns

	out, err := scanAcceptance(r.db.QueryRowContext(ctx, q, a.VersionID, a.UserID, a.AcceptedAt))
	if err != nil {
		if isPgErr(err, codeForeignKeyViolation) {
			return nil, repository.ErrReferenceNotFound
		}
		return nil, err
	}
	return out, nil
}

// ListByVersion returns acceptances against a version, optionally filtered by user.
func (r *AcceptancePostgres) ListByVersion(ctx context.Context, versionID, userID string) ([]model.Acceptance, error) {
	const qAll = `
		SELECT ` + acceptanceColumns + `
		FROM legal_document_acceptances
		WHERE version_id = $1
		ORDER BY id ASC
	`
	const qUser = `
		SELECT ` + acceptanceColumns + `
		FROM legal_document_acceptances
		WHERE version_id = $1 AND user_id = $2
		ORDER BY id ASC
	`

	var (
		rows *sql.Rows
		err  error
	)
	if userID == "" {
		rows, err = r.db.QueryContext(ctx, qAll, versionID)
	} else {
		rows, err = r.db.QueryContext(ctx, qUser, versionID, userID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAcceptances(rows)
}

// ListByDocument returns acceptances for all (or only the published) versions
// of a document, grouped by version id. The published variant resolves the
// pointer inside the same statement that reads the ledger, so the result is a
// consistent snapshot of (pointer, acceptances).
func (r *AcceptancePostgres) ListByDocument(ctx context.Context, documentID, userID string, publishedOnly bool) (map[string][]model.Acceptance, error) {
	const qAll = `
		SELECT a.id, a.version_id, a.user_id, a.accepted_at
		FROM legal_document_acceptances a
		JOIN legal_document_versions v ON v.id = a.version_id
		WHERE v.document_id = $1
		  AND ($2 = '' OR a.user_id = $2)
		ORDER BY a.id ASC
	`
	const qPublished = `
		SELECT a.id, a.version_id, a.user_id, a.accepted_at
		FROM legal_document_acceptances a
		JOIN legal_documents d ON d.published_version_id = a.version_id
		WHERE d.id = $1
		  AND ($2 = '' OR a.user_id = $2)
		ORDER BY a.id ASC
	`

	q := qAll
	if publishedOnly {
		q = qPublished
	}
	rows, err := r.db.QueryContext(ctx, q, documentID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	grouped := make(map[string][]model.Acceptance)
	for rows.Next() {
		a, err := scanAcceptance(rows)
		if err != nil {
			return nil, err
		}
		grouped[a.VersionID] = append(grouped[a.VersionID], *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return grouped, nil
}

// ExistsForVersion reports whether the user accepted the given version.
func (r *AcceptancePostgres) ExistsForVersion(ctx context.Context, versionID, userID string) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM legal_document_acceptances
			WHERE version_id = $1 AND user_id = $2
		)
	`
	var exists bool
	err := r.db.QueryRowContext(ctx, q, versionID, userID).Scan(&exists)
	return exists, err
}

// ExistsForDocument reports whether any acceptance exists against any version
// of the document.
func (r *AcceptancePostgres) ExistsForDocument(ctx context.Context, documentID string) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1
			FROM legal_document_acceptances a
			JOIN legal_document_versions v ON v.id = a.version_id
			WHERE v.document_id = $1
		)
	`
	var exists bool
	err := r.db.QueryRowContext(ctx, q, documentID).Scan(&exists)
	return exists, err
}

func collectAcceptances(rows *sql.Rows) ([]model.Acceptance, error) {
	items := make([]model.Acceptance, 0)
	for rows.Next() {
		a, err := scanAcceptance(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

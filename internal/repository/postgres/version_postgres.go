package postgres

import (
	"context"
	"database/sql"

	"legalapi/internal/model"
	"legalapi/internal/repository"
)

// VersionPostgres is a PostgreSQL implementation of repository.VersionRepository.
type VersionPostgres struct {
	db *sql.DB
}

// NewVersionPostgres creates a new VersionPostgres repository.
func NewVersionPostgres(db *sql.DB) *VersionPostgres {
	return &VersionPostgres{db: db}
}

var _ repository.VersionRepository = (*VersionPostgres)(nil)

const versionColumns = `id, document_id, label, acceptance_label, body, language_code, created_at, changed_at`

func scanVersion(row interface{ Scan(...any) error }) (*model.DocumentVersion, error) {
	var v model.DocumentVersion
	if err := row.Scan(
		&v.ID,
		&v.DocumentID,
		&v.Label,
		&v.AcceptanceLabel,
		&v.Body,
		&v.LanguageCode,
		&v.CreatedAt,
		&v.ChangedAt,
	); err != nil {
		return nil, err
	}
	return &v, nil
}

// Create inserts a new version row and returns the stored record.
func (r *VersionPostgres) Create(ctx context.Context, v *model.DocumentVersion) (*model.DocumentVersion, error) {
	const q = `
		INSERT INTO legal_document_versions (id, document_id, label, acceptance_label, body, language_code, created_at, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING ` + versionColumns

	row := r.db.QueryRowContext(ctx, q,
		v.ID,
		v.DocumentID,
		v.Label,
		v.AcceptanceLabel,
		v.Body,
		v.LanguageCode,
		v.CreatedAt,
	)
	out, err := scanVersion(row)
	if err != nil {
		if isPgErr(err, codeForeignKeyViolation) {
			return nil, repository.ErrReferenceNotFound
		}
		return nil, err
	}
	return out, nil
}

// FindByID fetches a single version by its ID.
func (r *VersionPostgres) FindByID(ctx context.Context, id string) (*model.DocumentVersion, error) {
	const q = `
		SELECT ` + versionColumns + `
		FROM legal_document_versions
		WHERE id = $1
	`
	return scanVersion(r.db.QueryRowContext(ctx, q, id))
}

// ListByDocument returns all versions of a document, newest-first.
func (r *VersionPostgres) ListByDocument(ctx context.Context, documentID string) ([]model.DocumentVersion, error) {
	const q = `
		SELECT ` + versionColumns + `
		FROM legal_document_versions
		WHERE document_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.DocumentVersion, 0)
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Update persists mutable version fields. The NOT EXISTS guard freezes the
// row as soon as any acceptance references it: the text a user agreed to must
// not change under their acceptance record.
func (r *VersionPostgres) Update(ctx context.Context, v *model.DocumentVersion) (*model.DocumentVersion, error) {
	const q = `
		UPDATE legal_document_versions v
		SET label = $2, acceptance_label = $3, body = $4, language_code = $5, changed_at = now()
		WHERE v.id = $1
		  AND NOT EXISTS (
			SELECT 1 FROM legal_document_acceptances a
			WHERE a.version_id = v.id
		  )
		RETURNING ` + versionColumns

	out, err := scanVersion(r.db.QueryRowContext(ctx, q,
		v.ID,
		v.Label,
		v.AcceptanceLabel,
		v.Body,
		v.LanguageCode,
	))
	if err == nil {
		return out, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	// Guard refused the update: missing row or frozen row.
	var exists bool
	const qVer = `SELECT EXISTS (SELECT 1 FROM legal_document_versions WHERE id = $1)`
	if probeErr := r.db.QueryRowContext(ctx, qVer, v.ID).Scan(&exists); probeErr != nil {
		return nil, probeErr
	}
	if !exists {
		return nil, sql.ErrNoRows
	}
	return nil, repository.ErrRowFrozen
}

package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"legalapi/internal/model"
	"legalapi/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `id, label, published_version_id, require_signup, require_existing, settings, created_at, updated_at`

func scanDocument(row interface{ Scan(...any) error }) (*model.Document, error) {
	var (
		d         model.Document
		published sql.NullString
		settings  []byte
	)
	if err := row.Scan(
		&d.ID,
		&d.Label,
		&published,
		&d.RequireSignup,
		&d.RequireExisting,
		&settings,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	d.PublishedVersionID = published.String
	if len(settings) > 0 {
		if err := json.Unmarshal(settings, &d.Settings); err != nil {
			return nil, fmt.Errorf("decode settings: %w", err)
		}
	}
	return &d, nil
}

func encodeSettings(s model.DocumentSettings) ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	return b, nil
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO legal_documents (id, label, require_signup, require_existing, settings, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING ` + documentColumns

	settings, err := encodeSettings(doc.Settings)
	if err != nil {
		return nil, err
	}

	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.Label,
		doc.RequireSignup,
		doc.RequireExisting,
		settings,
		doc.CreatedAt,
	)
	out, err := scanDocument(row)
	if err != nil {
		if isPgErr(err, codeUniqueViolation) {
			return nil, repository.ErrDuplicateKey
		}
		return nil, err
	}
	return out, nil
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM legal_documents
		WHERE id = $1
	`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// FindDetail fetches a document joined with its published version in one
// statement, so readers never observe a pointer and a version row from two
// different moments.
func (r *DocumentPostgres) FindDetail(ctx context.Context, id string) (*repository.DocumentDetail, error) {
	const q = `
		SELECT d.id, d.label, d.published_version_id, d.require_signup, d.require_existing, d.settings, d.created_at, d.updated_at,
		       v.id, v.document_id, v.label, v.acceptance_label, v.body, v.language_code, v.created_at, v.changed_at
		FROM legal_documents d
		LEFT JOIN legal_document_versions v ON v.id = d.published_version_id
		WHERE d.id = $1
	`
	var (
		d          model.Document
		published  sql.NullString
		settings   []byte
		vID        sql.NullString
		vDoc       sql.NullString
		vLabel     sql.NullString
		vAccept    sql.NullString
		vBody      sql.NullString
		vLang      sql.NullString
		vCreatedAt sql.NullTime
		vChangedAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID, &d.Label, &published, &d.RequireSignup, &d.RequireExisting, &settings, &d.CreatedAt, &d.UpdatedAt,
		&vID, &vDoc, &vLabel, &vAccept, &vBody, &vLang, &vCreatedAt, &vChangedAt,
	)
	if err != nil {
		return nil, err
	}
	d.PublishedVersionID = published.String
	if len(settings) > 0 {
		if err := json.Unmarshal(settings, &d.Settings); err != nil {
			return nil, fmt.Errorf("decode settings: %w", err)
		}
	}

	detail := &repository.DocumentDetail{Document: d}
	if vID.Valid {
		detail.PublishedVersion = &model.DocumentVersion{
			ID:              vID.String,
			DocumentID:      vDoc.String,
			Label:           vLabel.String,
			AcceptanceLabel: vAccept.String,
			Body:            vBody.String,
			LanguageCode:    vLang.String,
			CreatedAt:       vCreatedAt.Time,
			ChangedAt:       vChangedAt.Time,
		}
	}
	return detail, nil
}

// List returns documents ordered by label using LIMIT/OFFSET pagination and a total count.
func (r *DocumentPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Document], error) {
	const qCount = `SELECT COUNT(*) FROM legal_documents`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + documentColumns + `
		FROM legal_documents
		ORDER BY label ASC, id ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Document]{
		Items: items,
		Total: total,
	}, nil
}

// SetPublishedVersion updates the published pointer in a single guarded
// UPDATE. The correlated EXISTS keeps the operation atomic: there is no
// intermediate state in which the pointer references a version of another
// document.
func (r *DocumentPostgres) SetPublishedVersion(ctx context.Context, documentID, versionID string) (*model.Document, error) {
	const q = `
		UPDATE legal_documents d
		SET published_version_id = $2, updated_at = now()
		WHERE d.id = $1
		  AND EXISTS (
			SELECT 1 FROM legal_document_versions v
			WHERE v.id = $2 AND v.document_id = d.id
		  )
		RETURNING ` + documentColumns

	out, err := scanDocument(r.db.QueryRowContext(ctx, q, documentID, versionID))
	if err == nil {
		return out, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	// Guard refused the update: distinguish a missing document from a
	// version that belongs elsewhere.
	var exists bool
	const qDoc = `SELECT EXISTS (SELECT 1 FROM legal_documents WHERE id = $1)`
	if probeErr := r.db.QueryRowContext(ctx, qDoc, documentID).Scan(&exists); probeErr != nil {
		return nil, probeErr
	}
	if !exists {
		return nil, sql.ErrNoRows
	}
	return nil, repository.ErrVersionMismatch
}

// Save persists mutable document fields.
func (r *DocumentPostgres) Save(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		UPDATE legal_documents
		SET label = $2, require_signup = $3, require_existing = $4, settings = $5, updated_at = now()
		WHERE id = $1
		RETURNING ` + documentColumns

	settings, err := encodeSettings(doc.Settings)
	if err != nil {
		return nil, err
	}
	return scanDocument(r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.Label,
		doc.RequireSignup,
		doc.RequireExisting,
		settings,
	))
}

// Delete removes a document by ID. Versions cascade; the acceptance FK has no
// cascade, so documents with recorded acceptances are refused by the database
// even if the caller skipped its own check.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM legal_documents WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	if err != nil && isPgErr(err, codeForeignKeyViolation) {
		return repository.ErrRowInUse
	}
	return err
}

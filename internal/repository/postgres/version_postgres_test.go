package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"legalapi/internal/model"
	"legalapi/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

var versionCols = []string{"id", "document_id", "label", "acceptance_label", "body", "language_code", "created_at", "changed_at"}

func versionRow(id, documentID, label string, now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(versionCols).
		AddRow(id, documentID, label, "I agree", "<p>body</p>", "en", now, now)
}

func TestVersionPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewVersionPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("success", func(t *testing.T) {
		v := &model.DocumentVersion{
			ID:              "ver-1",
			DocumentID:      "tos",
			Label:           "v1",
			AcceptanceLabel: "I agree",
			Body:            "<p>body</p>",
			LanguageCode:    "en",
			CreatedAt:       now,
		}

		mock.ExpectQuery("INSERT INTO legal_document_versions").
			WithArgs(v.ID, v.DocumentID, v.Label, v.AcceptanceLabel, v.Body, v.LanguageCode, v.CreatedAt).
			WillReturnRows(versionRow(v.ID, v.DocumentID, v.Label, now))

		result, err := repo.Create(ctx, v)

		assert.NoError(t, err)
		assert.Equal(t, "ver-1", result.ID)
		assert.Equal(t, "tos", result.DocumentID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown document", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO legal_document_versions").
			WillReturnError(&pgconn.PgError{Code: "23503"})

		_, err := repo.Create(ctx, &model.DocumentVersion{ID: "ver-1", DocumentID: "nope", CreatedAt: now})

		assert.ErrorIs(t, err, repository.ErrReferenceNotFound)
	})
}

func TestVersionPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewVersionPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM legal_document_versions WHERE id = ?").
			WithArgs("ver-1").
			WillReturnRows(versionRow("ver-1", "tos", "v1", time.Now()))

		v, err := repo.FindByID(ctx, "ver-1")

		assert.NoError(t, err)
		assert.Equal(t, "ver-1", v.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM legal_document_versions WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		v, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, v)
	})
}

func TestVersionPostgres_ListByDocument(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewVersionPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	rows := sqlmock.NewRows(versionCols).
		AddRow("ver-2", "tos", "v2", "I agree", "", "en", now, now).
		AddRow("ver-1", "tos", "v1", "I agree", "", "en", now.Add(-time.Hour), now.Add(-time.Hour))

	mock.ExpectQuery("SELECT (.+) FROM legal_document_versions WHERE document_id = (.+) ORDER BY created_at DESC").
		WithArgs("tos").
		WillReturnRows(rows)

	items, err := repo.ListByDocument(ctx, "tos")

	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "ver-2", items[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVersionPostgres_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewVersionPostgres(db)
	ctx := context.Background()

	v := &model.DocumentVersion{
		ID:              "ver-1",
		Label:           "v1 revised",
		AcceptanceLabel: "I agree",
		Body:            "<p>revised</p>",
		LanguageCode:    "en",
	}

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("UPDATE legal_document_versions v").
			WithArgs(v.ID, v.Label, v.AcceptanceLabel, v.Body, v.LanguageCode).
			WillReturnRows(versionRow("ver-1", "tos", "v1 revised", time.Now()))

		out, err := repo.Update(ctx, v)

		assert.NoError(t, err)
		assert.Equal(t, "v1 revised", out.Label)
	})

	t.Run("frozen once accepted", func(t *testing.T) {
		mock.ExpectQuery("UPDATE legal_document_versions v").
			WithArgs(v.ID, v.Label, v.AcceptanceLabel, v.Body, v.LanguageCode).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(v.ID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		_, err := repo.Update(ctx, v)

		assert.ErrorIs(t, err, repository.ErrRowFrozen)
	})

	t.Run("missing version", func(t *testing.T) {
		mock.ExpectQuery("UPDATE legal_document_versions v").
			WithArgs(v.ID, v.Label, v.AcceptanceLabel, v.Body, v.LanguageCode).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(v.ID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		_, err := repo.Update(ctx, v)

		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

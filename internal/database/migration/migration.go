package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_legal_documents",
		SQL: `CREATE TABLE IF NOT EXISTS legal_documents (
  id                   TEXT        PRIMARY KEY,
  label                TEXT        NOT NULL,
  published_version_id UUID        NULL,
  require_signup       BOOLEAN     NOT NULL DEFAULT FALSE,
  require_existing     BOOLEAN     NOT NULL DEFAULT FALSE,
  settings             JSONB       NOT NULL DEFAULT '{}'::jsonb,
  created_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at           TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_legal_document_versions",
		SQL: `CREATE TABLE IF NOT EXISTS legal_document_versions (
  id               UUID        PRIMARY KEY,
  document_id      TEXT        NOT NULL REFERENCES legal_documents (id) ON DELETE CASCADE,
  label            TEXT        NOT NULL,
  acceptance_label TEXT        NOT NULL,
  body             TEXT        NOT NULL DEFAULT '',
  language_code    TEXT        NOT NULL DEFAULT '',
  created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
  changed_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "add_fk_legal_documents_published_version",
		SQL: `ALTER TABLE legal_documents
  ADD CONSTRAINT fk_legal_documents_published_version
  FOREIGN KEY (published_version_id) REFERENCES legal_document_versions (id);`,
	},
	{
		Name: "create_index_versions_document_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_legal_document_versions_document_id ON legal_document_versions (document_id, created_at DESC);`,
	},
	{
		Name: "create_table_legal_document_acceptances",
		SQL: `CREATE TABLE IF NOT EXISTS legal_document_acceptances (
  id          BIGSERIAL   PRIMARY KEY,
  version_id  UUID        NOT NULL REFERENCES legal_document_versions (id),
  user_id     TEXT        NOT NULL,
  accepted_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_acceptances_version_user",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_legal_document_acceptances_version_user ON legal_document_acceptances (version_id, user_id);`,
	},
	{
		Name: "create_index_acceptances_user",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_legal_document_acceptances_user ON legal_document_acceptances (user_id);`,
	},
}

// EnsureMigrated checks for the sentinel table and bootstraps the schema when
// it is missing. Safe to run on every startup.
func EnsureMigrated(ctx context.Context, db *sql.DB, log zerolog.Logger) error {
	start := time.Now()
	log = log.With().Str("component", "database").Logger()

	log.Info().Str("event", "db_migration_check").Msg("checking schema")

	var exists bool
	query := "SELECT to_regclass('public.legal_documents') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error().
			Str("event", "db_migration_failed").
			Err(err).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("sentinel table check failed")
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info().
			Str("event", "db_migration_skip").
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("schema already exists, skipping migration")
		return nil
	}

	log.Info().Str("event", "db_migration_start").Msg("bootstrapping schema")

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error().
				Str("event", "db_migration_failed").
				Str("migration_step", step.Name).
				Err(err).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Msg("migration step failed")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info().
			Str("event", "db_migration_step").
			Str("migration_step", step.Name).
			Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
			Msg("migration step applied")
	}

	log.Info().
		Str("event", "db_migration_success").
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("schema bootstrapped")

	return nil
}

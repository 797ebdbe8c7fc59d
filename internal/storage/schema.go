package storage

import (
	"context"
	"fmt"
)

// schemaStatements DDL idempotente del esquema, en orden de dependencias
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS candidates (
        id UUID PRIMARY KEY,
        email TEXT NOT NULL UNIQUE,
        full_name TEXT NOT NULL,
        phone TEXT NOT NULL DEFAULT '',
        created_at TIMESTAMPTZ NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS staff (
        id UUID PRIMARY KEY,
        full_name TEXT NOT NULL,
        email TEXT NOT NULL UNIQUE,
        role TEXT NOT NULL,
        password_hash TEXT NOT NULL,
        is_active BOOLEAN NOT NULL DEFAULT true
    )`,
	`CREATE TABLE IF NOT EXISTS vacancies (
        id UUID PRIMARY KEY,
        title TEXT NOT NULL,
        kind TEXT NOT NULL,
        manager_id UUID NOT NULL REFERENCES staff(id),
        is_active BOOLEAN NOT NULL DEFAULT true,
        created_at TIMESTAMPTZ NOT NULL DEFAULT now()
    )`,
	`CREATE TABLE IF NOT EXISTS vacancy_required_docs (
        vacancy_id UUID NOT NULL REFERENCES vacancies(id),
        doc_type TEXT NOT NULL,
        phase TEXT NOT NULL,
        PRIMARY KEY (vacancy_id, doc_type)
    )`,
	`CREATE TABLE IF NOT EXISTS folio_counters (
        year INT PRIMARY KEY,
        last_seq INT NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS applications (
        id UUID PRIMARY KEY,
        folio TEXT NOT NULL UNIQUE,
        folio_year INT NOT NULL,
        folio_seq INT NOT NULL,
        candidate_id UUID NOT NULL REFERENCES candidates(id),
        vacancy_id UUID NOT NULL REFERENCES vacancies(id),
        status TEXT NOT NULL,
        rh_interview_at TIMESTAMPTZ,
        rh_interview_place TEXT,
        manager_interview_at TIMESTAMPTZ,
        manager_interview_place TEXT,
        created_at TIMESTAMPTZ NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL,
        UNIQUE (vacancy_id, candidate_id),
        UNIQUE (folio_year, folio_seq)
    )`,
	`CREATE TABLE IF NOT EXISTS application_documents (
        id UUID PRIMARY KEY,
        application_id UUID NOT NULL REFERENCES applications(id),
        doc_type TEXT NOT NULL,
        phase TEXT NOT NULL,
        version INT NOT NULL,
        file_name TEXT NOT NULL,
        file_path TEXT NOT NULL,
        mime_type TEXT NOT NULL DEFAULT '',
        file_size BIGINT NOT NULL DEFAULT 0,
        uploaded_at TIMESTAMPTZ NOT NULL,
        UNIQUE (application_id, doc_type, version)
    )`,
	`CREATE TABLE IF NOT EXISTS question_bank_versions (
        id UUID PRIMARY KEY,
        kind TEXT NOT NULL,
        version INT NOT NULL,
        is_active BOOLEAN NOT NULL DEFAULT false,
        created_at TIMESTAMPTZ NOT NULL,
        UNIQUE (kind, version)
    )`,
	`CREATE UNIQUE INDEX IF NOT EXISTS question_bank_versions_active
        ON question_bank_versions (kind) WHERE is_active`,
	`CREATE TABLE IF NOT EXISTS question_bank_questions (
        id UUID PRIMARY KEY,
        version_id UUID NOT NULL REFERENCES question_bank_versions(id),
        ord INT NOT NULL,
        text TEXT NOT NULL,
        is_required BOOLEAN NOT NULL,
        UNIQUE (version_id, ord)
    )`,
	`CREATE TABLE IF NOT EXISTS rh_interviews (
        id UUID PRIMARY KEY,
        application_id UUID NOT NULL UNIQUE REFERENCES applications(id),
        bank_version_id UUID NOT NULL REFERENCES question_bank_versions(id),
        started_at TIMESTAMPTZ NOT NULL,
        finished_at TIMESTAMPTZ
    )`,
	`CREATE TABLE IF NOT EXISTS rh_interview_answers (
        interview_id UUID NOT NULL REFERENCES rh_interviews(id),
        question_id UUID NOT NULL REFERENCES question_bank_questions(id),
        answer TEXT NOT NULL,
        PRIMARY KEY (interview_id, question_id)
    )`,
	`CREATE TABLE IF NOT EXISTS rh_interview_extras (
        id UUID PRIMARY KEY,
        interview_id UUID NOT NULL REFERENCES rh_interviews(id),
        ord INT NOT NULL,
        question TEXT NOT NULL,
        answer TEXT NOT NULL,
        UNIQUE (interview_id, ord)
    )`,
	`CREATE TABLE IF NOT EXISTS manager_interviews (
        application_id UUID PRIMARY KEY REFERENCES applications(id),
        score INT NOT NULL,
        notes TEXT NOT NULL DEFAULT '',
        updated_at TIMESTAMPTZ NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS evaluation_scores (
        application_id UUID NOT NULL REFERENCES applications(id),
        criterion TEXT NOT NULL,
        score INT NOT NULL CHECK (score BETWEEN 1 AND 5),
        updated_at TIMESTAMPTZ NOT NULL,
        PRIMARY KEY (application_id, criterion)
    )`,
	`CREATE TABLE IF NOT EXISTS evaluation_summaries (
        application_id UUID PRIMARY KEY REFERENCES applications(id),
        factors_for TEXT NOT NULL,
        factors_against TEXT NOT NULL,
        conclusion TEXT NOT NULL,
        references_laborales TEXT,
        total INT,
        updated_at TIMESTAMPTZ NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS audit_log (
        id UUID PRIMARY KEY,
        application_id UUID NOT NULL REFERENCES applications(id),
        action TEXT NOT NULL,
        from_status TEXT,
        to_status TEXT NOT NULL,
        actor_id UUID,
        note TEXT NOT NULL DEFAULT '',
        created_at TIMESTAMPTZ NOT NULL
    )`,
	`CREATE INDEX IF NOT EXISTS audit_log_application
        ON audit_log (application_id, created_at)`,
}

// Migrate aplica el esquema idempotente al arranque
func (d *Database) Migrate(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := d.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	d.logger.Info("Database schema is up to date")
	return nil
}

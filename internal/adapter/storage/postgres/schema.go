package postgres

import (
	"context"
	"fmt"
)

// Schema statements, applied at startup. None of the tables has a column
// that could hold requester personal data; the ledger tracks status and
// timestamps only.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS document_requests (
		request_id UUID PRIMARY KEY,
		document_type TEXT NOT NULL,
		request_status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		expires_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_document_requests_status ON document_requests (request_status)`,
	`CREATE INDEX IF NOT EXISTS idx_document_requests_expires ON document_requests (expires_at)`,
	`CREATE TABLE IF NOT EXISTS api_users (
		user_id UUID PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'staff',
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		last_login_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS audit_logs (
		log_id UUID PRIMARY KEY,
		action TEXT NOT NULL,
		actor_id UUID,
		request_id UUID,
		ip_address TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs (created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_logs_request ON audit_logs (request_id)`,
}

// InitSchema creates the tables and indexes if they do not exist yet.
func InitSchema(ctx context.Context, pool Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	return nil
}

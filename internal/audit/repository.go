package audit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Repository persists audit entries in the audit_logs table.
type Repository struct {
	db *sql.DB
}

// NewRepository constructs an audit repository.
func NewRepository(db *sql.DB) *Repository {
	if db == nil {
		return nil
	}
	return &Repository{db: db}
}

const insertEntry = `
INSERT INTO audit_logs (
	id, tenant_id, actor, role, action, resource_type, resource_id,
	metadata, payload_digest, ip, user_agent, created_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`

// Log writes an audit entry, filling id, timestamp, and digest when absent.
func (r *Repository) Log(ctx context.Context, entry Entry) error {
	if r == nil || r.db == nil {
		return errors.New("audit repo: nil db")
	}
	entry = entry.normalize(time.Now())
	_, err := r.db.ExecContext(ctx, insertEntry,
		entry.ID, entry.TenantID, entry.Actor, entry.Role,
		entry.Action, entry.ResourceType, entry.ResourceID,
		entry.Metadata, entry.PayloadDigest, entry.IP, entry.UserAgent,
		entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("audit log %s: %w", entry.Action, err)
	}
	return nil
}

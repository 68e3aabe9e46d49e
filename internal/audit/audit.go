package audit

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Entry records one mutating back-office action (título settle, account
// deactivation, contract edit) for compliance review.
type Entry struct {
	ID            string
	TenantID      string
	Actor         string
	Role          string
	Action        string
	ResourceType  string
	ResourceID    string
	Metadata      json.RawMessage
	PayloadDigest string
	IP            string
	UserAgent     string
	CreatedAt     time.Time
}

// Logger writes audit entries.
type Logger interface {
	Log(ctx context.Context, entry Entry) error
}

// normalize fills the id, timestamp, and metadata digest when the caller
// left them empty. Entries are immutable once written, so the digest lets
// reviewers detect tampering with the metadata column.
func (e Entry) normalize(now time.Time) Entry {
	if e.ID == "" {
		buf := make([]byte, 16)
		_, _ = rand.Read(buf)
		e.ID = "audit-" + hex.EncodeToString(buf)
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now.UTC()
	}
	if e.PayloadDigest == "" && len(e.Metadata) > 0 {
		sum := sha256.Sum256(e.Metadata)
		e.PayloadDigest = hex.EncodeToString(sum[:])
	}
	return e
}

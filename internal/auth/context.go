package auth

import "context"

type contextKey struct{}

var identityKey contextKey

// Identity carries the authenticated caller through request contexts.
type Identity struct {
	TenantID string
	Role     Role
	Subject  string
}

// WithIdentity stores the caller identity in context.
func WithIdentity(ctx context.Context, tenantID string, role Role, subject string) context.Context {
	return context.WithValue(ctx, identityKey, Identity{
		TenantID: tenantID,
		Role:     role,
		Subject:  subject,
	})
}

// IdentityFromContext extracts the caller identity; zero value when absent.
func IdentityFromContext(ctx context.Context) Identity {
	if ctx == nil {
		return Identity{}
	}
	if identity, ok := ctx.Value(identityKey).(Identity); ok {
		return identity
	}
	return Identity{}
}

// TenantIDFromContext extracts the tenant id from context.
func TenantIDFromContext(ctx context.Context) string {
	return IdentityFromContext(ctx).TenantID
}

// RoleFromContext extracts the caller role from context.
func RoleFromContext(ctx context.Context) Role {
	return IdentityFromContext(ctx).Role
}

// SubjectFromContext extracts the token subject from context.
func SubjectFromContext(ctx context.Context) string {
	return IdentityFromContext(ctx).Subject
}

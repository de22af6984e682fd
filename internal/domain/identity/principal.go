package identity

import (
	"context"

	"github.com/stockdash/backend/internal/domain/shared"
)

// Role is the access level of a principal
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// IsValid reports whether the role is one of the known roles
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleStaff
}

// String returns the role as a string
func (r Role) String() string {
	return string(r)
}

// Principal is the authenticated identity attached to a request.
// It is a value type: handlers receive copies and cannot mutate the directory.
type Principal struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
	Name string `json:"name"`
}

// IsAdmin reports whether the principal has the admin role
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Account is a directory entry that can sign in.
// Password is the demo plaintext credential and must never be serialized.
type Account struct {
	Principal
	Email    string `json:"email"`
	Password string `json:"-"`
}

// ErrPrincipalNotFound is returned when a principal id does not resolve
var ErrPrincipalNotFound = shared.NewNotFoundError("Principal not found")

// PrincipalDirectory resolves principal identifiers.
// Implementations may be backed by a static table or a real datastore.
type PrincipalDirectory interface {
	Resolve(ctx context.Context, principalID string) (Principal, error)
}

// CredentialDirectory looks up sign-in accounts
type CredentialDirectory interface {
	FindByEmail(ctx context.Context, email string) (Account, error)
	FindAccount(ctx context.Context, principalID string) (Account, error)
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying the principal
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal stored by WithPrincipal
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

package persistence

import (
	"context"

	"github.com/stockdash/backend/internal/domain/identity"
)

// DemoAccounts are the accounts seeded into the static directory
func DemoAccounts() []identity.Account {
	return []identity.Account{
		{
			Principal: identity.Principal{ID: "1", Role: identity.RoleAdmin, Name: "Admin User"},
			Email:     "admin@demo.com",
			Password:  "password123",
		},
		{
			Principal: identity.Principal{ID: "2", Role: identity.RoleStaff, Name: "Staff User"},
			Email:     "staff@demo.com",
			Password:  "password123",
		},
	}
}

// StaticPrincipalDirectory is a fixed, process-wide account table.
// It is read-only after construction and safe for concurrent use.
type StaticPrincipalDirectory struct {
	accounts []identity.Account
}

// NewStaticPrincipalDirectory creates a directory over the given accounts
func NewStaticPrincipalDirectory(accounts []identity.Account) *StaticPrincipalDirectory {
	return &StaticPrincipalDirectory{
		accounts: append([]identity.Account(nil), accounts...),
	}
}

// Resolve implements identity.PrincipalDirectory
func (d *StaticPrincipalDirectory) Resolve(ctx context.Context, principalID string) (identity.Principal, error) {
	acc, err := d.FindAccount(ctx, principalID)
	if err != nil {
		return identity.Principal{}, err
	}
	return acc.Principal, nil
}

// FindAccount implements identity.CredentialDirectory
func (d *StaticPrincipalDirectory) FindAccount(ctx context.Context, principalID string) (identity.Account, error) {
	if err := ctx.Err(); err != nil {
		return identity.Account{}, err
	}
	for _, acc := range d.accounts {
		if acc.ID == principalID {
			return acc, nil
		}
	}
	return identity.Account{}, identity.ErrPrincipalNotFound
}

// FindByEmail implements identity.CredentialDirectory. Emails match exactly.
func (d *StaticPrincipalDirectory) FindByEmail(ctx context.Context, email string) (identity.Account, error) {
	if err := ctx.Err(); err != nil {
		return identity.Account{}, err
	}
	for _, acc := range d.accounts {
		if acc.Email == email {
			return acc, nil
		}
	}
	return identity.Account{}, identity.ErrPrincipalNotFound
}

package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stockdash/backend/internal/domain/identity"
	"github.com/stockdash/backend/internal/domain/shared"
	"github.com/stockdash/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong password
var ErrInvalidCredentials = shared.NewDomainError(shared.CodeUnauthorized, "Invalid email or password")

// TokenEncoder issues session tokens
type TokenEncoder interface {
	Encode(principalID string, issuedAtMillis int64) string
}

// AuthService handles the demo sign-in flow
type AuthService struct {
	accounts identity.CredentialDirectory
	tokens   TokenEncoder
	validate *validator.Validate
	now      func() time.Time
}

// NewAuthService creates a new authentication service
func NewAuthService(accounts identity.CredentialDirectory, tokens TokenEncoder) *AuthService {
	return &AuthService{
		accounts: accounts,
		tokens:   tokens,
		validate: validator.New(),
		now:      time.Now,
	}
}

// Login checks the demo credentials and issues a session token
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return nil, shared.NewValidationError("Email and password are required")
	}
	if err := s.validate.Var(email, "email"); err != nil {
		return nil, shared.NewValidationError("Invalid email address")
	}

	log := logger.L(ctx).With(zap.String("email", email))

	acc, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, identity.ErrPrincipalNotFound) {
			log.Warn("Login attempt for unknown account")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	// plaintext comparison: demo accounts only
	if acc.Password != input.Password {
		log.Warn("Login attempt with wrong password")
		return nil, ErrInvalidCredentials
	}

	log.Info("Login successful", zap.String("user_id", acc.ID))
	return &LoginResult{
		Token: s.tokens.Encode(acc.ID, s.now().UnixMilli()),
		User:  ToUserResponse(acc),
	}, nil
}

// Logout ends a session. Tokens are not tracked, so there is nothing to revoke.
func (s *AuthService) Logout(ctx context.Context, principal identity.Principal) {
	logger.L(ctx).Info("Logout", zap.String("user_id", principal.ID))
}

// Me returns the account of the authenticated principal
func (s *AuthService) Me(ctx context.Context, principal identity.Principal) (*UserResponse, error) {
	acc, err := s.accounts.FindAccount(ctx, principal.ID)
	if err != nil {
		if errors.Is(err, identity.ErrPrincipalNotFound) {
			return nil, shared.ErrUnauthorized
		}
		return nil, err
	}
	user := ToUserResponse(acc)
	return &user, nil
}

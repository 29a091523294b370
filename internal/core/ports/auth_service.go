package ports

import (
	"context"
	"time"

	"github.com/sirpyerre/blog-api/internal/core/domain"
)

// AuthService covers registration, credential checks and session tokens.
type AuthService interface {
	Register(ctx context.Context, email, name, password string) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	IssueToken(user *domain.User) (string, error)
	Logout(ctx context.Context, token string) error
	// ResolveSession verifies the token and reloads its user from the store.
	ResolveSession(ctx context.Context, token string) (*domain.User, error)
}

// PasswordHasher produces and checks salted password hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(encoded, password string) bool
	// Burn spends the same work as Verify without a stored hash.
	Burn(password string)
}

// TokenRevoker keeps the ids of logged-out tokens until they would expire anyway.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/blog-api/internal/core/domain"
	"github.com/sirpyerre/blog-api/internal/core/ports"
	"github.com/sirpyerre/blog-api/pkg/logger"
)

// AuthOptions configures token lifetime and admin provisioning.
type AuthOptions struct {
	JWTSecret string
	TokenTTL  time.Duration
	// AdminEmails are granted the admin role when they register.
	AdminEmails []string
	// BootstrapFirstAdmin makes the first user of an empty store an admin.
	BootstrapFirstAdmin bool
}

// AuthService implements registration, login and session resolution.
type AuthService struct {
	users     ports.UserRepository
	hasher    ports.PasswordHasher
	tokens    *TokenIssuer
	revoker   ports.TokenRevoker
	events    ports.EventPublisher
	admins    map[string]struct{}
	bootstrap bool
	log       zerolog.Logger
	now       func() time.Time
}

func NewAuthService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	revoker ports.TokenRevoker,
	events ports.EventPublisher,
	opts AuthOptions,
	log zerolog.Logger,
) *AuthService {
	admins := make(map[string]struct{}, len(opts.AdminEmails))
	for _, e := range opts.AdminEmails {
		if e = strings.TrimSpace(e); e != "" {
			admins[e] = struct{}{}
		}
	}
	return &AuthService{
		users:     users,
		hasher:    hasher,
		tokens:    NewTokenIssuer(opts.JWTSecret, opts.TokenTTL),
		revoker:   revoker,
		events:    events,
		admins:    admins,
		bootstrap: opts.BootstrapFirstAdmin,
		log:       log,
		now:       time.Now,
	}
}

// Register creates a user with a salted password hash. The lookup before the
// insert only produces the friendly error early; the store's unique index on
// email is what actually rejects a concurrent duplicate.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*domain.User, error) {
	if err := validateRegistration(email, name, password); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	role, err := s.roleFor(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	created, err := s.users.Create(ctx, &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Int64("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	s.publish(domain.BlogEvent{Type: domain.EventUserRegistered, UserID: created.ID})
	return created, nil
}

// Authenticate checks the password against the stored hash. An unknown email
// and a wrong password are reported separately, as the login page always has.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Burn(password)
			return nil, domain.ErrEmailNotFound
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		return nil, domain.ErrPasswordMismatch
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			s.log.Info().Str("email", logger.MaskEmail(email)).Err(err).Msg("login rejected")
		}
		return "", nil, err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("login: issue token: %w", err)
	}
	return token, user, nil
}

func (s *AuthService) IssueToken(user *domain.User) (string, error) {
	return s.tokens.Issue(user)
}

// Logout revokes the token until its natural expiry. Without a revocation
// store the client is simply expected to discard the token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return err
	}
	if s.revoker == nil {
		return nil
	}
	if err := s.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.log.Debug().Str("subject", claims.Subject).Msg("session revoked")
	return nil
}

func (s *AuthService) ResolveSession(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	if s.revoker != nil {
		revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("resolve session: %w", err)
		}
		if revoked {
			return nil, domain.ErrTokenRevoked
		}
	}

	id, err := claims.UserID()
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	return user, nil
}

func (s *AuthService) roleFor(ctx context.Context, email string) (domain.Role, error) {
	if _, ok := s.admins[email]; ok {
		return domain.RoleAdmin, nil
	}
	if !s.bootstrap {
		return domain.RoleMember, nil
	}
	n, err := s.users.Count(ctx)
	if err != nil {
		return "", err
	}
	if n == 0 {
		return domain.RoleAdmin, nil
	}
	return domain.RoleMember, nil
}

func (s *AuthService) publish(e domain.BlogEvent) {
	if s.events == nil {
		return
	}
	e.OccurredAt = s.now().UTC()
	s.events.Publish(e)
}

func validateRegistration(email, name, password string) error {
	switch {
	case strings.TrimSpace(email) == "":
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	case len(email) > domain.MaxEmailLen:
		return fmt.Errorf("%w: email exceeds %d characters", domain.ErrValidation, domain.MaxEmailLen)
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	case len(name) > domain.MaxNameLen:
		return fmt.Errorf("%w: name exceeds %d characters", domain.ErrValidation, domain.MaxNameLen)
	case password == "":
		return fmt.Errorf("%w: password is required", domain.ErrValidation)
	}
	return nil
}

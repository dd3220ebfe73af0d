// Package services contains server-side business logic. This file implements
// AuthService, which orchestrates registration, login, and token-backed
// identity lookup over the validator, user store, hasher, and token issuer.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/server/auth"
	"github.com/dmitrijs2005/authgate/internal/server/avatar"
	"github.com/dmitrijs2005/authgate/internal/server/config"
	"github.com/dmitrijs2005/authgate/internal/server/models"
	"github.com/dmitrijs2005/authgate/internal/server/password"
	"github.com/dmitrijs2005/authgate/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/authgate/internal/validate"
	"github.com/google/uuid"
)

var registerRules = validate.RuleSet{
	{Field: "name", Message: "Name is required", Check: validate.NotEmpty},
	{Field: "email", Message: "Please enter a valid email", Check: validate.Email},
	{Field: "password", Message: "Please enter a password with 10 or more characters", Check: validate.MinLen(10)},
}

var loginRules = validate.RuleSet{
	{Field: "email", Message: "Please enter a valid email", Check: validate.Email},
	{Field: "password", Message: "Password is required", Check: validate.NotEmpty},
}

// AuthService provides the credential-issuance operations:
// - Register: validate, create the account, mint a token
// - Login: verify credentials and mint a token
// - Identify: resolve a verified token's user id to the sanitized record
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *password.Hasher
	issuer      *auth.Issuer
	avatars     avatar.Generator
}

// NewAuthService constructs an AuthService from the immutable server config.
// A missing signing secret fails here, at startup, with
// common.ErrMissingSecret.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) (*AuthService, error) {
	issuer, err := auth.NewIssuer(cfg.SecretKey, cfg.TokenValidityDuration)
	if err != nil {
		return nil, err
	}
	return &AuthService{
		db:          db,
		repomanager: m,
		hasher:      password.NewHasher(cfg.BcryptCost),
		issuer:      issuer,
		avatars:     avatar.FromProvider(cfg.AvatarProvider),
	}, nil
}

// Register validates the input, creates the account, and returns a signed
// token over the new record's id. On any failure path the store is left
// untouched; the success path performs exactly one insert. A duplicate email
// fails with common.ErrorAlreadyExists whether it is seen by the lookup or,
// when two registrations race, by the store's unique constraint.
func (s *AuthService) Register(ctx context.Context, name, email, rawPassword string) (string, error) {

	violations := registerRules.Apply(map[string]string{
		"name":     name,
		"email":    email,
		"password": rawPassword,
	})
	if len(violations) > 0 {
		return "", &common.ValidationError{Violations: violations}
	}

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetByEmail(ctx, email)
	if err == nil {
		return "", common.ErrorAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return "", fmt.Errorf("error searching user: %w", err)
	}

	hash, err := s.hasher.Hash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Avatar:       s.avatars.URL(email),
	}

	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", common.ErrorAlreadyExists
		}
		return "", fmt.Errorf("error creating user: %w", err)
	}

	return s.issuer.Issue(user.ID)
}

// Login verifies the credential pair and returns a signed token. An unknown
// email and a wrong password fail with the same sentinel, so callers cannot
// tell which half of the pair was wrong.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, error) {

	violations := loginRules.Apply(map[string]string{
		"email":    email,
		"password": rawPassword,
	})
	if len(violations) > 0 {
		return "", &common.ValidationError{Violations: violations}
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrInvalidCredentials
		}
		return "", fmt.Errorf("error searching user: %w", err)
	}

	matched, err := s.hasher.Verify(rawPassword, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("error verifying password: %w", err)
	}
	if !matched {
		return "", common.ErrInvalidCredentials
	}

	return s.issuer.Issue(user.ID)
}

// Identify resolves an already-verified user id to the stored record,
// without the password hash. A missing record surfaces as
// common.ErrorNotFound so the transport can choose its status mapping.
func (s *AuthService) Identify(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// TokenUserID verifies a presented token and returns the claimed user id.
// Used by the transport's auth middleware.
func (s *AuthService) TokenUserID(token string) (string, error) {
	return s.issuer.UserID(token)
}

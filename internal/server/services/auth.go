// Package services contains server-side business logic. This file implements
// AuthService: password hashing, credential checks, and issuing, verifying
// and revoking the bearer tokens kept in each user's token list.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskmanager/internal/common"
	"github.com/dmitrijs2005/taskmanager/internal/cryptox"
	"github.com/dmitrijs2005/taskmanager/internal/dbx"
	"github.com/dmitrijs2005/taskmanager/internal/server/auth"
	"github.com/dmitrijs2005/taskmanager/internal/server/config"
	"github.com/dmitrijs2005/taskmanager/internal/server/models"
	"github.com/dmitrijs2005/taskmanager/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	jwtSecret   []byte
	bcryptCost  int
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		jwtSecret:   []byte(cfg.SecretKey),
		bcryptCost:  cfg.BcryptCost,
	}
}

// IssueToken signs a new token for userID and appends it to the user's
// token list through db, which may be a running transaction.
func (s *AuthService) IssueToken(ctx context.Context, db dbx.DBTX, userID string) (string, error) {
	token, err := auth.GenerateToken(userID, s.jwtSecret)
	if err != nil {
		return "", common.ErrorInternal
	}

	if err := s.repomanager.Tokens(db).Add(ctx, userID, token); err != nil {
		return "", fmt.Errorf("error storing token: %w", err)
	}

	return token, nil
}

// VerifyToken resolves token to its owner. The signature must be valid and
// the token must still be in the owner's list; any failure there yields
// common.ErrInvalidToken. Store failures yield common.ErrorInternal.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*models.User, error) {
	userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(userID); err != nil {
		return nil, common.ErrInvalidToken
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, common.ErrorInternal
	}

	ok, err := s.repomanager.Tokens(s.db).Exists(ctx, userID, token)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if !ok {
		return nil, common.ErrInvalidToken
	}

	return user, nil
}

// Authenticate checks email and password. Unknown e-mails and wrong
// passwords both yield common.ErrorUnableToLogin; the latter also matches
// common.ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, common.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: %w", common.ErrorUnableToLogin, err)
		}
		return nil, common.ErrorInternal
	}

	if err := cryptox.ComparePassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			return nil, fmt.Errorf("%w: %w", common.ErrorUnableToLogin, common.ErrInvalidCredentials)
		}
		return nil, common.ErrorInternal
	}

	return user, nil
}

func (s *AuthService) HashPassword(plaintext string) (string, error) {
	hash, err := cryptox.HashPassword(plaintext, s.bcryptCost)
	if err != nil {
		return "", common.ErrorInternal
	}
	return hash, nil
}

func (s *AuthService) RevokeToken(ctx context.Context, userID, token string) error {
	if err := s.repomanager.Tokens(s.db).Remove(ctx, userID, token); err != nil {
		return fmt.Errorf("error removing token: %w", err)
	}
	return nil
}

func (s *AuthService) RevokeAll(ctx context.Context, userID string) error {
	if _, err := s.repomanager.Tokens(s.db).RemoveAll(ctx, userID); err != nil {
		return fmt.Errorf("error removing tokens: %w", err)
	}
	return nil
}

package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskmanager/internal/common"
	"github.com/dmitrijs2005/taskmanager/internal/dbx"
	"github.com/dmitrijs2005/taskmanager/internal/server/models"
	"github.com/dmitrijs2005/taskmanager/internal/server/repositories/repomanager"
)

const emailTakenMessage = "is already taken"

// UserService handles account lifecycle: registration, login, logout,
// profile changes and account removal.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	auth        *AuthService
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, a *AuthService) *UserService {
	return &UserService{db: db, repomanager: m, auth: a}
}

// Register validates in, stores the user with a hashed password and issues
// the first token. Both writes share one transaction.
func (s *UserService) Register(ctx context.Context, in models.NewUser) (*models.AuthResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	result := &models.AuthResult{}
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.repomanager.Users(tx).Create(ctx, &models.User{
			Name:         in.Name,
			Email:        in.Email,
			PasswordHash: hash,
			Age:          in.Age,
		})
		if err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return models.NewValidationError("email", emailTakenMessage)
			}
			return fmt.Errorf("error creating user: %w", err)
		}

		token, err := s.auth.IssueToken(ctx, tx, user.ID)
		if err != nil {
			return err
		}

		result.User, result.Token = user, token
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *UserService) Login(ctx context.Context, creds models.Credentials) (*models.AuthResult, error) {
	user, err := s.auth.Authenticate(ctx, creds.Email, creds.Password)
	if err != nil {
		return nil, err
	}

	token, err := s.auth.IssueToken(ctx, s.db, user.ID)
	if err != nil {
		return nil, err
	}

	return &models.AuthResult{User: user, Token: token}, nil
}

// Logout drops only the token the caller presented.
func (s *UserService) Logout(ctx context.Context, userID, token string) error {
	return s.auth.RevokeToken(ctx, userID, token)
}

func (s *UserService) LogoutAll(ctx context.Context, userID string) error {
	return s.auth.RevokeAll(ctx, userID)
}

// Update applies patch to user and persists it. The password is re-hashed
// only when the patch carries one.
func (s *UserService) Update(ctx context.Context, user *models.User, patch models.UserPatch) (*models.User, error) {
	updated := *user

	password, changed, err := patch.Apply(&updated)
	if err != nil {
		return nil, err
	}

	if changed {
		if updated.PasswordHash, err = s.auth.HashPassword(password); err != nil {
			return nil, err
		}
	}

	out, err := s.repomanager.Users(s.db).Update(ctx, &updated)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists):
			return nil, models.NewValidationError("email", emailTakenMessage)
		case errors.Is(err, common.ErrorNotFound):
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	return out, nil
}

// Delete removes the user's tasks, then tokens, then the user, atomically.
func (s *UserService) Delete(ctx context.Context, user *models.User) (*models.User, error) {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Tasks(tx).DeleteByOwner(ctx, user.ID); err != nil {
			return fmt.Errorf("error deleting tasks: %w", err)
		}
		if _, err := s.repomanager.Tokens(tx).RemoveAll(ctx, user.ID); err != nil {
			return fmt.Errorf("error deleting tokens: %w", err)
		}
		if err := s.repomanager.Users(tx).Delete(ctx, user.ID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorNotFound
			}
			return fmt.Errorf("error deleting user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

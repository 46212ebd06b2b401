// Package services contains server-side business logic. This file implements
// UserService: registration, login and the current-user lookup.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/devconnector/internal/common"
	"github.com/dmitrijs2005/devconnector/internal/server/auth"
	"github.com/dmitrijs2005/devconnector/internal/server/models"
	"github.com/dmitrijs2005/devconnector/internal/server/repositories/repomanager"
)

type UserService struct {
	repomanager repomanager.RepositoryManager
	hasher      *auth.PasswordHasher
	issuer      *auth.Issuer
}

func NewUserService(m repomanager.RepositoryManager, hasher *auth.PasswordHasher, issuer *auth.Issuer) *UserService {
	return &UserService{repomanager: m, hasher: hasher, issuer: issuer}
}

// Register creates an account with a gravatar avatar and returns a token
// for it. A taken email yields common.ErrUserExists.
func (s *UserService) Register(ctx context.Context, name, email, password string) (string, error) {
	repo := s.repomanager.Users(s.repomanager.Conn())
	email = common.NormalizeEmail(email)

	_, err := repo.GetByEmail(ctx, email)
	if err == nil {
		return "", common.ErrUserExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return "", fmt.Errorf("error looking up user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		Avatar:       GravatarURL(email),
		PasswordHash: hash,
	}

	// the unique index still catches a concurrent registration
	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrUserExists) {
			return "", err
		}
		return "", fmt.Errorf("error creating user: %w", err)
	}

	return s.issuer.Issue(u.ID)
}

// Login returns common.ErrInvalidCredentials for an unknown email and a wrong
// password alike; both paths run one bcrypt comparison.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Users(s.repomanager.Conn())

	user, err := repo.GetByEmail(ctx, common.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.VerifyAgainstDummy(password)
			return "", common.ErrInvalidCredentials
		}
		return "", fmt.Errorf("error looking up user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", common.ErrInvalidCredentials
	}

	return s.issuer.Issue(user.ID)
}

// Me returns the caller's account without the password hash.
func (s *UserService) Me(ctx context.Context, id auth.Identity) (*models.User, error) {
	if !validID(id.UserID) {
		return nil, common.NotFound(common.ResourceUser)
	}

	user, err := s.repomanager.Users(s.repomanager.Conn()).GetByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NotFound(common.ResourceUser)
		}
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}

// Package users persists accounts (the credential store).
package users

import (
	"context"

	"github.com/dmitrijs2005/devconnector/internal/server/models"
)

type Repository interface {
	// Create fails with common.ErrUserExists when the email is taken.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateAvatar(ctx context.Context, id, avatar string) error
	Delete(ctx context.Context, id string) error
}

// Package profiles persists developer profiles with their experience and
// education sub-lists.
package profiles

import (
	"context"

	"github.com/dmitrijs2005/devconnector/internal/server/models"
)

type Repository interface {
	// GetByUserID returns the profile with its owner's name and avatar and
	// both sub-lists, newest entries first.
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	List(ctx context.Context) ([]*models.Profile, error)
	// Upsert creates the user's profile or replaces its scalar fields.
	// Sub-lists are left untouched.
	Upsert(ctx context.Context, p *models.Profile) (*models.Profile, error)
	DeleteByUserID(ctx context.Context, userID string) error

	AddExperience(ctx context.Context, profileID string, e *models.Experience) (*models.Experience, error)
	DeleteExperience(ctx context.Context, profileID, expID string) error
	AddEducation(ctx context.Context, profileID string, e *models.Education) (*models.Education, error)
	DeleteEducation(ctx context.Context, profileID, eduID string) error
}

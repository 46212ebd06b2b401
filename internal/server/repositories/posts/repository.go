// Package posts persists posts together with their likes and comments.
package posts

import (
	"context"

	"github.com/dmitrijs2005/devconnector/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.Post) (*models.Post, error)
	// List returns all posts newest first, each with likes and comments.
	List(ctx context.Context) ([]*models.Post, error)
	Get(ctx context.Context, id string) (*models.Post, error)
	Delete(ctx context.Context, id string) error
	DeleteByUserID(ctx context.Context, userID string) error

	HasLike(ctx context.Context, postID, userID string) (bool, error)
	// AddLike reports false when the like already existed.
	AddLike(ctx context.Context, postID, userID string) (bool, error)
	// RemoveLike reports false when there was nothing to remove.
	RemoveLike(ctx context.Context, postID, userID string) (bool, error)
	Likes(ctx context.Context, postID string) ([]models.Like, error)

	AddComment(ctx context.Context, c *models.Comment) (*models.Comment, error)
	GetComment(ctx context.Context, postID, commentID string) (*models.Comment, error)
	DeleteComment(ctx context.Context, postID, commentID string) error
	Comments(ctx context.Context, postID string) ([]models.Comment, error)
}

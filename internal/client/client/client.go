package client

import (
	"context"

	"github.com/dmitrijs2005/devconnector/internal/client/models"
)

type Client interface {
	SetToken(token string)
	Ping(ctx context.Context) error
	Register(ctx context.Context, name, email string, password []byte) (string, error)
	Login(ctx context.Context, email string, password []byte) (string, error)
	Me(ctx context.Context) (*models.User, error)
	MyProfile(ctx context.Context) (*models.Profile, error)
	UpsertProfile(ctx context.Context, in *models.ProfileInput) (*models.Profile, error)
	Posts(ctx context.Context) ([]models.Post, error)
	Post(ctx context.Context, id string) (*models.Post, error)
	CreatePost(ctx context.Context, text string) (*models.Post, error)
	DeletePost(ctx context.Context, id string) error
	Like(ctx context.Context, id string) ([]models.Like, error)
	Unlike(ctx context.Context, id string) ([]models.Like, error)
	Comment(ctx context.Context, id, text string) ([]models.Comment, error)
	PresignAvatar(ctx context.Context, contentType string) (*models.AvatarUpload, error)
}

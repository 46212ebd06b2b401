package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/devconnector/internal/client/client"
	"github.com/dmitrijs2005/devconnector/internal/client/models"
)

// PostService wraps the post and profile endpoints the CLI exposes.
type PostService interface {
	List(ctx context.Context) ([]models.Post, error)
	Get(ctx context.Context, id string) (*models.Post, error)
	Create(ctx context.Context, text string) (*models.Post, error)
	Delete(ctx context.Context, id string) error
	Like(ctx context.Context, id string) (int, error)
	Unlike(ctx context.Context, id string) (int, error)
	Comment(ctx context.Context, id, text string) (int, error)
	MyProfile(ctx context.Context) (*models.Profile, error)
	SaveProfile(ctx context.Context, in *models.ProfileInput) (*models.Profile, error)
}

type postService struct {
	client client.Client
}

func NewPostService(c client.Client) PostService {
	return &postService{client: c}
}

func (s *postService) List(ctx context.Context) ([]models.Post, error) {
	return s.client.Posts(ctx)
}

func (s *postService) Get(ctx context.Context, id string) (*models.Post, error) {
	return s.client.Post(ctx, strings.TrimSpace(id))
}

func (s *postService) Create(ctx context.Context, text string) (*models.Post, error) {
	return s.client.CreatePost(ctx, text)
}

func (s *postService) Delete(ctx context.Context, id string) error {
	return s.client.DeletePost(ctx, strings.TrimSpace(id))
}

// Like returns the post's like count after the change.
func (s *postService) Like(ctx context.Context, id string) (int, error) {
	likes, err := s.client.Like(ctx, strings.TrimSpace(id))
	return len(likes), err
}

func (s *postService) Unlike(ctx context.Context, id string) (int, error) {
	likes, err := s.client.Unlike(ctx, strings.TrimSpace(id))
	return len(likes), err
}

// Comment returns the post's comment count after the change.
func (s *postService) Comment(ctx context.Context, id, text string) (int, error) {
	comments, err := s.client.Comment(ctx, strings.TrimSpace(id), text)
	return len(comments), err
}

func (s *postService) MyProfile(ctx context.Context) (*models.Profile, error) {
	return s.client.MyProfile(ctx)
}

func (s *postService) SaveProfile(ctx context.Context, in *models.ProfileInput) (*models.Profile, error) {
	return s.client.UpsertProfile(ctx, in)
}

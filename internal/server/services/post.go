package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/devconnector/internal/common"
	"github.com/dmitrijs2005/devconnector/internal/server/auth"
	"github.com/dmitrijs2005/devconnector/internal/server/models"
	"github.com/dmitrijs2005/devconnector/internal/server/repositories/repomanager"
)

type PostService struct {
	repomanager repomanager.RepositoryManager
}

func NewPostService(m repomanager.RepositoryManager) *PostService {
	return &PostService{repomanager: m}
}

func (s *PostService) author(ctx context.Context, id auth.Identity) (*models.User, error) {
	if !validID(id.UserID) {
		return nil, common.NotFound(common.ResourceUser)
	}
	u, err := s.repomanager.Users(s.repomanager.Conn()).GetByID(ctx, id.UserID)
	if err != nil {
		return nil, notFoundAs(err, common.ResourceUser, "getting user")
	}
	return u, nil
}

// Create stores a post with the author's current name and avatar.
func (s *PostService) Create(ctx context.Context, id auth.Identity, text string) (*models.Post, error) {
	u, err := s.author(ctx, id)
	if err != nil {
		return nil, err
	}

	p, err := s.repomanager.Posts(s.repomanager.Conn()).Create(ctx, &models.Post{
		UserID: u.ID,
		Text:   text,
		Name:   u.Name,
		Avatar: u.Avatar,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}
	return p, nil
}

func (s *PostService) List(ctx context.Context) ([]*models.Post, error) {
	list, err := s.repomanager.Posts(s.repomanager.Conn()).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	return list, nil
}

func (s *PostService) Get(ctx context.Context, postID string) (*models.Post, error) {
	if !validID(postID) {
		return nil, common.NotFound(common.ResourcePost)
	}
	p, err := s.repomanager.Posts(s.repomanager.Conn()).Get(ctx, postID)
	if err != nil {
		return nil, notFoundAs(err, common.ResourcePost, "getting post")
	}
	return p, nil
}

// Delete removes a post owned by the caller.
func (s *PostService) Delete(ctx context.Context, id auth.Identity, postID string) error {
	p, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}
	if err := auth.Authorize(p, id); err != nil {
		return err
	}

	if err := s.repomanager.Posts(s.repomanager.Conn()).Delete(ctx, p.ID); err != nil {
		return notFoundAs(err, common.ResourcePost, "deleting post")
	}
	return nil
}

// Like adds the caller's like and returns the post's likes, newest first.
// Anyone may like any post, but only once.
func (s *PostService) Like(ctx context.Context, id auth.Identity, postID string) ([]models.Like, error) {
	if _, err := s.author(ctx, id); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, postID); err != nil {
		return nil, err
	}

	repo := s.repomanager.Posts(s.repomanager.Conn())

	liked, err := repo.HasLike(ctx, postID, id.UserID)
	if err != nil {
		return nil, notFoundAs(err, common.ResourcePost, "checking like")
	}
	if liked {
		return nil, common.ErrAlreadyLiked
	}

	added, err := repo.AddLike(ctx, postID, id.UserID)
	if err != nil {
		return nil, notFoundAs(err, common.ResourcePost, "adding like")
	}
	if !added {
		return nil, common.ErrAlreadyLiked
	}

	return s.likes(ctx, postID)
}

// Unlike removes the caller's like and returns the remaining likes.
func (s *PostService) Unlike(ctx context.Context, id auth.Identity, postID string) ([]models.Like, error) {
	if _, err := s.author(ctx, id); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, postID); err != nil {
		return nil, err
	}

	repo := s.repomanager.Posts(s.repomanager.Conn())

	liked, err := repo.HasLike(ctx, postID, id.UserID)
	if err != nil {
		return nil, notFoundAs(err, common.ResourcePost, "checking like")
	}
	if !liked {
		return nil, common.ErrNotLiked
	}

	removed, err := repo.RemoveLike(ctx, postID, id.UserID)
	if err != nil {
		return nil, notFoundAs(err, common.ResourcePost, "removing like")
	}
	if !removed {
		return nil, common.ErrNotLiked
	}

	return s.likes(ctx, postID)
}

func (s *PostService) likes(ctx context.Context, postID string) ([]models.Like, error) {
	likes, err := s.repomanager.Posts(s.repomanager.Conn()).Likes(ctx, postID)
	if err != nil {
		return nil, notFoundAs(err, common.ResourcePost, "listing likes")
	}
	return likes, nil
}

// Comment adds a comment by the caller and returns all comments, newest first.
func (s *PostService) Comment(ctx context.Context, id auth.Identity, postID, text string) ([]models.Comment, error) {
	u, err := s.author(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, postID); err != nil {
		return nil, err
	}

	repo := s.repomanager.Posts(s.repomanager.Conn())
	_, err = repo.AddComment(ctx, &models.Comment{
		PostID: postID,
		UserID: u.ID,
		Text:   text,
		Name:   u.Name,
		Avatar: u.Avatar,
	})
	if err != nil {
		return nil, notFoundAs(err, common.ResourcePost, "adding comment")
	}

	return s.comments(ctx, postID)
}

// DeleteComment removes a comment written by the caller. The post's owner
// has no say over other people's comments.
func (s *PostService) DeleteComment(ctx context.Context, id auth.Identity, postID, commentID string) ([]models.Comment, error) {
	if _, err := s.Get(ctx, postID); err != nil {
		return nil, err
	}
	if !validID(commentID) {
		return nil, common.NotFound(common.ResourceComment)
	}

	repo := s.repomanager.Posts(s.repomanager.Conn())

	c, err := repo.GetComment(ctx, postID, commentID)
	if err != nil {
		return nil, notFoundAs(err, common.ResourceComment, "getting comment")
	}
	if err := auth.Authorize(c, id); err != nil {
		return nil, err
	}

	if err := repo.DeleteComment(ctx, postID, commentID); err != nil {
		return nil, notFoundAs(err, common.ResourceComment, "deleting comment")
	}

	return s.comments(ctx, postID)
}

func (s *PostService) comments(ctx context.Context, postID string) ([]models.Comment, error) {
	comments, err := s.repomanager.Posts(s.repomanager.Conn()).Comments(ctx, postID)
	if err != nil {
		return nil, notFoundAs(err, common.ResourcePost, "listing comments")
	}
	return comments, nil
}

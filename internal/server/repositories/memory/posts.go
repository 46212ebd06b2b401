package memory

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/devconnector/internal/common"
	"github.com/dmitrijs2005/devconnector/internal/server/models"
)

type PostRepository struct {
	s *Store
}

func (p *post) view() *models.Post {
	out := p.Post
	out.Likes = likesOf(p)
	out.Comments = commentsOf(p)
	return &out
}

// likesOf and commentsOf return newest first.
func likesOf(p *post) []models.Like {
	out := make([]models.Like, 0, len(p.likes))
	for i := len(p.likes) - 1; i >= 0; i-- {
		out = append(out, models.Like{UserID: p.likes[i].userID})
	}
	return out
}

func commentsOf(p *post) []models.Comment {
	out := make([]models.Comment, 0, len(p.comments))
	for i := len(p.comments) - 1; i >= 0; i-- {
		out = append(out, p.comments[i])
	}
	return out
}

func (r *PostRepository) Create(ctx context.Context, in *models.Post) (*models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	in.ID = r.s.newID()
	in.CreatedAt = r.s.tick()
	in.Likes = []models.Like{}
	in.Comments = []models.Comment{}
	r.s.posts[in.ID] = &post{Post: *in}
	return in, nil
}

func (r *PostRepository) List(ctx context.Context) ([]*models.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sorted := r.s.sortedPosts()
	result := make([]*models.Post, 0, len(sorted))
	for _, p := range sorted {
		result = append(result, p.view())
	}
	return result, nil
}

func (r *PostRepository) Get(ctx context.Context, id string) (*models.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.posts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p.view(), nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.posts, id)
	return nil
}

func (r *PostRepository) DeleteByUserID(ctx context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, p := range r.s.posts {
		if p.UserID == userID {
			delete(r.s.posts, id)
		}
	}
	return nil
}

func (r *PostRepository) HasLike(ctx context.Context, postID, userID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.posts[postID]
	if !ok {
		return false, common.ErrorNotFound
	}
	return slices.ContainsFunc(p.likes, func(l like) bool { return l.userID == userID }), nil
}

func (r *PostRepository) AddLike(ctx context.Context, postID, userID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.posts[postID]
	if !ok {
		return false, common.ErrorNotFound
	}
	if slices.ContainsFunc(p.likes, func(l like) bool { return l.userID == userID }) {
		return false, nil
	}
	p.likes = append(p.likes, like{userID: userID})
	return true, nil
}

func (r *PostRepository) RemoveLike(ctx context.Context, postID, userID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.posts[postID]
	if !ok {
		return false, common.ErrorNotFound
	}
	i := slices.IndexFunc(p.likes, func(l like) bool { return l.userID == userID })
	if i < 0 {
		return false, nil
	}
	p.likes = slices.Delete(p.likes, i, i+1)
	return true, nil
}

func (r *PostRepository) Likes(ctx context.Context, postID string) ([]models.Like, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.posts[postID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return likesOf(p), nil
}

func (r *PostRepository) AddComment(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.posts[c.PostID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c.ID = r.s.newID()
	c.CreatedAt = r.s.tick()
	p.comments = append(p.comments, *c)
	return c, nil
}

func (r *PostRepository) GetComment(ctx context.Context, postID, commentID string) (*models.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.posts[postID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	for _, c := range p.comments {
		if c.ID == commentID {
			out := c
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *PostRepository) DeleteComment(ctx context.Context, postID, commentID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.posts[postID]
	if !ok {
		return common.ErrorNotFound
	}
	i := slices.IndexFunc(p.comments, func(c models.Comment) bool { return c.ID == commentID })
	if i < 0 {
		return common.ErrorNotFound
	}
	p.comments = slices.Delete(p.comments, i, i+1)
	return nil
}

func (r *PostRepository) Comments(ctx context.Context, postID string) ([]models.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.posts[postID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return commentsOf(p), nil
}

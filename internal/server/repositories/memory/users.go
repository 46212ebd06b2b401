package memory

import (
	"context"

	"github.com/dmitrijs2005/devconnector/internal/common"
	"github.com/dmitrijs2005/devconnector/internal/server/models"
)

type UserRepository struct {
	s *Store
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.emails[user.Email]; ok {
		return nil, common.ErrUserExists
	}

	user.ID = r.s.newID()
	user.CreatedAt = r.s.tick()
	r.s.users[user.ID] = *user
	r.s.emails[user.Email] = user.ID

	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.emails[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u := r.s.users[id]
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, id, avatar string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.Avatar = avatar
	r.s.users[id] = u
	return nil
}

// Delete mirrors the foreign keys of the SQL schema: the user's likes and
// comments on other people's posts go with the account.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	delete(r.s.users, id)
	delete(r.s.emails, u.Email)
	delete(r.s.profiles, id)

	for pid, p := range r.s.posts {
		if p.UserID == id {
			delete(r.s.posts, pid)
			continue
		}
		likes := p.likes[:0]
		for _, l := range p.likes {
			if l.userID != id {
				likes = append(likes, l)
			}
		}
		p.likes = likes

		comments := p.comments[:0]
		for _, c := range p.comments {
			if c.UserID != id {
				comments = append(comments, c)
			}
		}
		p.comments = comments
	}
	return nil
}

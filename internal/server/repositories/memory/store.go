// Package memory holds process-local implementations of the server
// repositories. It backs the server when no database DSN is configured and
// the end-to-end tests.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/devconnector/internal/server/models"
	"github.com/google/uuid"
)

type like struct {
	userID string
}

type post struct {
	models.Post
	likes    []like
	comments []models.Comment
}

// Store is shared by the three repository views. All access goes through mu.
type Store struct {
	mu sync.RWMutex

	users    map[string]models.User
	emails   map[string]string
	profiles map[string]*models.Profile
	posts    map[string]*post

	now   func() time.Time
	newID func() string
	seq   int64
}

func NewStore() *Store {
	return &Store{
		users:    map[string]models.User{},
		emails:   map[string]string{},
		profiles: map[string]*models.Profile{},
		posts:    map[string]*post{},
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
}

// tick returns strictly increasing timestamps so newest-first ordering is
// stable even when the clock does not advance between calls.
func (s *Store) tick() time.Time {
	s.seq++
	return s.now().Add(time.Duration(s.seq))
}

func (s *Store) Users() *UserRepository       { return &UserRepository{s: s} }
func (s *Store) Profiles() *ProfileRepository { return &ProfileRepository{s: s} }
func (s *Store) Posts() *PostRepository       { return &PostRepository{s: s} }

func (s *Store) sortedPosts() []*post {
	list := make([]*post, 0, len(s.posts))
	for _, p := range s.posts {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list
}

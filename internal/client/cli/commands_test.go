package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/dmitrijs2005/devconnector/internal/client/models"
	"github.com/dmitrijs2005/devconnector/internal/client/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	services.AuthService

	name, email string
	pass        []byte
	err         error
	loggedIn    bool
}

func (f *fakeAuth) Register(_ context.Context, name, email string, pass []byte) error {
	f.name, f.email, f.pass = name, email, append([]byte(nil), pass...)
	f.loggedIn = f.err == nil
	return f.err
}

func (f *fakeAuth) Login(_ context.Context, email string, pass []byte) error {
	f.email, f.pass = email, append([]byte(nil), pass...)
	f.loggedIn = f.err == nil
	return f.err
}

func (f *fakeAuth) Logout(context.Context) error { f.loggedIn = false; return nil }
func (f *fakeAuth) LoggedIn() bool { return f.loggedIn }

type fakePosts struct {
	services.PostService

	posts   []models.Post
	created string
	deleted string
	err     error
}

func (f *fakePosts) List(context.Context) ([]models.Post, error) { return f.posts, f.err }

func (f *fakePosts) Create(_ context.Context, text string) (*models.Post, error) {
	f.created = text
	return &models.Post{ID: "p-new", Text: text}, f.err
}

func (f *fakePosts) Delete(_ context.Context, id string) error {
	f.deleted = id
	return f.err
}

func (f *fakePosts) Like(context.Context, string) (int, error) { return 3, f.err }

func stubInputs(t *testing.T, texts []string, password []byte) {
	t.Helper()
	origST, origGP, origML := getSimpleText, getPassword, getMultiline
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		v := texts[i]
		i++
		return v, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return "multi\nline", nil }
	t.Cleanup(func() {
		getSimpleText, getPassword, getMultiline = origST, origGP, origML
	})
}

func newTestApp(auth *fakeAuth, posts *fakePosts) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{authService: auth, postService: posts, out: &out}, &out
}

func TestRegister_WipesPasswordAndSetsUser(t *testing.T) {
	pw := []byte("secret1")
	stubInputs(t, []string{"Alice", "Alice@Example.com"}, pw)

	auth := &fakeAuth{}
	a, out := newTestApp(auth, &fakePosts{})

	require.NoError(t, a.Register(context.Background()))
	assert.Equal(t, "Alice", auth.name)
	assert.Equal(t, "secret1", string(auth.pass))
	assert.Equal(t, make([]byte, len(pw)), pw)
	assert.Equal(t, "alice@example.com", a.status())
	assert.True(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Registered")
}

func TestLogin_Failure(t *testing.T) {
	stubInputs(t, []string{"a@b.c"}, []byte("pw"))

	auth := &fakeAuth{err: errors.New("Invalid Credentials")}
	a, _ := newTestApp(auth, &fakePosts{})

	require.Error(t, a.Login(context.Background()))
	assert.Equal(t, "offline", a.status())
	assert.False(t, a.isLoggedIn())
}

func TestLogout(t *testing.T) {
	auth := &fakeAuth{loggedIn: true}
	a, _ := newTestApp(auth, &fakePosts{})
	a.userName = "a@b.c"

	require.NoError(t, a.Logout(context.Background()))
	assert.False(t, auth.loggedIn)
	assert.Equal(t, "offline", a.status())
}

func TestPostsCommands(t *testing.T) {
	stubInputs(t, nil, nil)

	posts := &fakePosts{posts: []models.Post{{
		ID: "p1", Name: "Alice", Text: "hello\nworld", CreatedAt: time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC),
		Likes: []models.Like{{UserID: "u"}},
	}}}
	a, out := newTestApp(&fakeAuth{}, posts)
	ctx := context.Background()

	require.NoError(t, a.Posts(ctx))
	assert.Contains(t, out.String(), "p1  2024-01-02 03:04  Alice: hello ...  [1 likes, 0 comments]")

	require.NoError(t, a.CreatePost(ctx))
	assert.Equal(t, "multi\nline", posts.created)
	assert.Contains(t, out.String(), "Created post p-new")

	require.NoError(t, a.Delete(ctx, "p1"))
	assert.Equal(t, "p1", posts.deleted)

	require.NoError(t, a.Like(ctx, "p1"))
	assert.Contains(t, out.String(), "Liked (3 likes)")

	posts.posts, posts.err = nil, nil
	out.Reset()
	require.NoError(t, a.Posts(ctx))
	assert.Equal(t, "No posts yet\n", out.String())
}

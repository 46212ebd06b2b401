package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/devconnector/internal/common"
	"github.com/dmitrijs2005/devconnector/internal/dbx"
	"github.com/dmitrijs2005/devconnector/internal/server/auth"
	"github.com/dmitrijs2005/devconnector/internal/server/models"
	"github.com/dmitrijs2005/devconnector/internal/server/repositories/repomanager"
	usersrepo "github.com/dmitrijs2005/devconnector/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_StoresNormalizedUser(t *testing.T) {
	m := repomanager.NewMemoryRepositoryManager()
	us, ver := newUserService(t, m)

	id := register(t, us, ver, "Alice", "  Alice@Example.com ")

	u, err := m.Users(nil).GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, id.UserID, u.ID)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, GravatarURL("alice@example.com"), u.Avatar)
	assert.NotEqual(t, "secret1", u.PasswordHash)
	assert.True(t, strings.HasPrefix(u.PasswordHash, "$2"))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	m := repomanager.NewMemoryRepositoryManager()
	us, ver := newUserService(t, m)
	register(t, us, ver, "Alice", "alice@example.com")

	_, err := us.Register(context.Background(), "Other", "ALICE@example.com", "secret2")
	assert.ErrorIs(t, err, common.ErrUserExists)
}

func TestLogin(t *testing.T) {
	m := repomanager.NewMemoryRepositoryManager()
	us, ver := newUserService(t, m)
	id := register(t, us, ver, "Alice", "alice@example.com")

	tok, err := us.Login(context.Background(), "Alice@example.com", "secret1")
	require.NoError(t, err)
	got, err := ver.GetUserIDFromToken(tok)
	require.NoError(t, err)
	assert.Equal(t, id.UserID, got)

	_, wrongPw := us.Login(context.Background(), "alice@example.com", "nope")
	_, noUser := us.Login(context.Background(), "ghost@example.com", "secret1")

	assert.ErrorIs(t, wrongPw, common.ErrInvalidCredentials)
	assert.ErrorIs(t, noUser, common.ErrInvalidCredentials)
	assert.Equal(t, wrongPw.Error(), noUser.Error())
}

func TestMe(t *testing.T) {
	m := repomanager.NewMemoryRepositoryManager()
	us, ver := newUserService(t, m)
	id := register(t, us, ver, "Alice", "alice@example.com")

	u, err := us.Me(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Empty(t, u.PasswordHash)

	_, err = us.Me(context.Background(), auth.Identity{UserID: "not-a-uuid"})
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = us.Me(context.Background(), auth.Identity{UserID: "00000000-0000-0000-0000-000000000001"})
	var nf *common.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, common.ResourceUser, nf.Resource)
}

// --- failing store ---

type failingUsersRepo struct {
	usersrepo.Repository
	err error
}

func (f *failingUsersRepo) GetByEmail(context.Context, string) (*models.User, error) {
	return nil, f.err
}

type failingRepoManager struct {
	repomanager.RepositoryManager
	users *failingUsersRepo
}

func (m *failingRepoManager) Conn() dbx.DBTX                       { return nil }
func (m *failingRepoManager) Users(dbx.DBTX) usersrepo.Repository { return m.users }

func TestRegisterAndLogin_StoreError(t *testing.T) {
	m := &failingRepoManager{users: &failingUsersRepo{err: errors.New("db down")}}
	us, _ := newUserService(t, m)

	_, err := us.Register(context.Background(), "A", "a@example.com", "secret1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
	assert.NotErrorIs(t, err, common.ErrUserExists)

	_, err = us.Login(context.Background(), "a@example.com", "secret1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestGravatarURL(t *testing.T) {
	// md5("alice@example.com")
	want := "//www.gravatar.com/avatar/c160f8cc69a4f0bf2b0362752353d060?s=200&r=pg&d=mm"
	assert.Equal(t, want, GravatarURL(" Alice@Example.com"))
}

package httpapi

import (
	"net/http"
	"testing"

	"github.com/dmitrijs2005/devconnector/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndToEnd_RegisterLoginMeDelete(t *testing.T) {
	api := newTestAPI(t, newTestConfig())

	alice := api.register("Alice", "alice@example.com", "secret1")
	bob := api.register("Bob", "bob@example.com", "secret2")

	// login issues a fresh token for the same account
	rec := api.do(http.MethodPost, "/api/auth", "", map[string]string{"email": "ALICE@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	aliceLogin := decode[tokenResponse](t, rec).Token

	rec = api.do(http.MethodGet, "/api/auth", aliceLogin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[map[string]any](t, rec)
	assert.Equal(t, "Alice", me["name"])
	assert.Equal(t, "alice@example.com", me["email"])
	assert.NotContains(t, me, "password")
	assert.NotContains(t, me, "PasswordHash")
	assert.NotContains(t, rec.Body.String(), "$2a$")
	aliceID := me["_id"].(string)

	// profile
	rec = api.do(http.MethodPost, "/api/profile", alice, map[string]any{
		"status": "Developer", "skills": "go, sql", "githubusername": "alice",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	profile := decode[models.Profile](t, rec)
	assert.Equal(t, []string{"go", "sql"}, profile.Skills)
	assert.Equal(t, "Alice", profile.User.Name)

	rec = api.do(http.MethodPut, "/api/profile/experience", alice, map[string]any{
		"title": "Dev", "company": "ACME", "from": "2020-01-02", "current": true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	profile = decode[models.Profile](t, rec)
	require.Len(t, profile.Experience, 1)
	assert.Nil(t, profile.Experience[0].To)

	// posts: bob likes alice's post twice
	rec = api.do(http.MethodPost, "/api/posts", alice, map[string]string{"text": "hello world"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	post := decode[models.Post](t, rec)
	assert.Equal(t, aliceID, post.UserID)

	rec = api.do(http.MethodPut, "/api/posts/like/"+post.ID, bob, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, decode[[]models.Like](t, rec), 1)

	rec = api.do(http.MethodPut, "/api/posts/like/"+post.ID, bob, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Post already liked", decode[msgBody](t, rec).Msg)

	rec = api.do(http.MethodPost, "/api/posts/comment/"+post.ID, bob, map[string]string{"text": "nice"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	comments := decode[[]models.Comment](t, rec)
	require.Len(t, comments, 1)

	// bob cannot delete alice's post, alice cannot delete bob's comment
	rec = api.do(http.MethodDelete, "/api/posts/"+post.ID, bob, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "User not authorized", decode[msgBody](t, rec).Msg)

	rec = api.do(http.MethodDelete, "/api/posts/comment/"+post.ID+"/"+comments[0].ID, alice, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// bob posts something that must survive alice's account deletion
	rec = api.do(http.MethodPost, "/api/posts", bob, map[string]string{"text": "still here"})
	require.Equal(t, http.StatusOK, rec.Code)

	// delete alice's account
	rec = api.do(http.MethodDelete, "/api/profile", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "User deleted", decode[msgBody](t, rec).Msg)

	rec = api.do(http.MethodGet, "/api/profile/user/"+aliceID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Profile not found", decode[msgBody](t, rec).Msg)

	rec = api.do(http.MethodGet, "/api/posts/"+post.ID, bob, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Post not found", decode[msgBody](t, rec).Msg)

	rec = api.do(http.MethodGet, "/api/posts", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	remaining := decode[[]models.Post](t, rec)
	require.Len(t, remaining, 1)
	assert.Equal(t, "still here", remaining[0].Text)

	rec = api.do(http.MethodPost, "/api/auth", "", map[string]string{"email": "alice@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// the token itself outlives the account; lookups behind it report not found
	rec = api.do(http.MethodGet, "/api/auth", alice, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

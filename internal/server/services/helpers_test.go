package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/devconnector/internal/server/auth"
	"github.com/dmitrijs2005/devconnector/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func newUserService(t *testing.T, m repomanager.RepositoryManager) (*UserService, *auth.Verifier) {
	t.Helper()

	iss, err := auth.NewIssuer([]byte(testSecret), time.Hour)
	require.NoError(t, err)
	ver, err := auth.NewVerifier([]byte(testSecret))
	require.NoError(t, err)

	return NewUserService(m, auth.NewPasswordHasherWithCost(bcrypt.MinCost), iss), ver
}

// register creates an account and returns the caller identity for it.
func register(t *testing.T, us *UserService, ver *auth.Verifier, name, email string) auth.Identity {
	t.Helper()

	tok, err := us.Register(context.Background(), name, email, "secret1")
	require.NoError(t, err)

	id, err := ver.GetUserIDFromToken(tok)
	require.NoError(t, err)
	return auth.Identity{UserID: id}
}

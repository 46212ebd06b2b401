package server

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/devconnector/internal/common"
	"github.com/dmitrijs2005/devconnector/internal/server/config"
	"github.com/dmitrijs2005/devconnector/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.SecretKey = "app-test-secret"
	c.LogLevel = "error"
	return c
}

type failingMigrations struct {
	*repomanager.MemoryRepositoryManager
	closed bool
}

func (f *failingMigrations) RunMigrations(context.Context) error { return errors.New("boom") }

func (f *failingMigrations) Close() error {
	f.closed = true
	return nil
}

func TestNewApp_MissingSecret(t *testing.T) {
	c := testConfig()
	c.SecretKey = ""

	_, err := NewApp(context.Background(), c)
	require.ErrorIs(t, err, common.ErrMissingSecret)
}

func TestNewApp_InMemory(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)

	assert.IsType(t, &repomanager.MemoryRepositoryManager{}, app.repomanager)
	assert.NotNil(t, app.verifier)
	assert.NotNil(t, app.services.Users)
	assert.NotNil(t, app.services.Profiles)
	assert.NotNil(t, app.services.Posts)
	assert.NotNil(t, app.services.Avatars)
}

func TestNewApp_StorageErrors(t *testing.T) {
	orig := openRepositoryManager
	t.Cleanup(func() { openRepositoryManager = orig })

	t.Run("open fails", func(t *testing.T) {
		openRepositoryManager = func(context.Context, string) (repomanager.RepositoryManager, error) {
			return nil, errors.New("connection refused")
		}
		_, err := NewApp(context.Background(), testConfig())
		require.ErrorContains(t, err, "db init error")
	})

	t.Run("migrations fail", func(t *testing.T) {
		m := &failingMigrations{MemoryRepositoryManager: repomanager.NewMemoryRepositoryManager()}
		openRepositoryManager = func(context.Context, string) (repomanager.RepositoryManager, error) {
			return m, nil
		}
		_, err := NewApp(context.Background(), testConfig())
		require.ErrorContains(t, err, "migration error")
		assert.True(t, m.closed)
	})
}

func TestOpenRepositoryManager_EmptyDSN(t *testing.T) {
	m, err := openRepositoryManager(context.Background(), "")
	require.NoError(t, err)
	assert.IsType(t, &repomanager.MemoryRepositoryManager{}, m)
}

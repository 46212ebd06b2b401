package repomanager

import (
	"context"

	"github.com/dmitrijs2005/devconnector/internal/dbx"
	"github.com/dmitrijs2005/devconnector/internal/server/repositories/memory"
	"github.com/dmitrijs2005/devconnector/internal/server/repositories/posts"
	"github.com/dmitrijs2005/devconnector/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/devconnector/internal/server/repositories/users"
)

// MemoryRepositoryManager serves every repository from one process-local
// store. Handles are ignored, and WithTx gives no rollback: a failing step
// leaves earlier steps applied.
type MemoryRepositoryManager struct {
	store *memory.Store
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{store: memory.NewStore()}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Conn() dbx.DBTX { return nil }

func (m *MemoryRepositoryManager) WithTx(ctx context.Context, fn dbx.TxFunc) error {
	return fn(ctx, nil)
}

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository       { return m.store.Users() }
func (m *MemoryRepositoryManager) Profiles(dbx.DBTX) profiles.Repository { return m.store.Profiles() }
func (m *MemoryRepositoryManager) Posts(dbx.DBTX) posts.Repository       { return m.store.Posts() }

func (m *MemoryRepositoryManager) Close() error { return nil }

// Package repomanager vends repository implementations bound to a database
// handle and owns schema migrations and transactions.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/devconnector/internal/dbx"
	"github.com/dmitrijs2005/devconnector/internal/server/repositories/posts"
	"github.com/dmitrijs2005/devconnector/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/devconnector/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	// Conn is the non-transactional handle for single-statement work.
	Conn() dbx.DBTX
	// WithTx runs fn atomically; repositories built from the handle passed
	// to fn take part in the transaction.
	WithTx(ctx context.Context, fn dbx.TxFunc) error
	Users(db dbx.DBTX) users.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	Posts(db dbx.DBTX) posts.Repository
	Close() error
}

package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/taskmanager/internal/dbx"
	"github.com/dmitrijs2005/taskmanager/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskmanager/internal/server/repositories/tokens"
	"github.com/dmitrijs2005/taskmanager/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Tokens(db dbx.DBTX) tokens.Repository
	Tasks(db dbx.DBTX) tasks.Repository
}

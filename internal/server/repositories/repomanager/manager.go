package repomanager

import (
	"context"
	"database/sql"

	"github.com/arshan09/AuthenticationApp/internal/dbx"
	"github.com/arshan09/AuthenticationApp/internal/server/repositories/devicetokens"
	"github.com/arshan09/AuthenticationApp/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	DeviceTokens(db dbx.DBTX) devicetokens.Repository
}

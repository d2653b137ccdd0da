// Package db wires repository implementations behind a single manager so the
// rest of the server does not care whether it runs on Postgres or in memory.
package db

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/contactdesk/internal/server/repositories/audit"
	"github.com/dmitrijs2005/contactdesk/internal/server/repositories/contacts"
	"github.com/dmitrijs2005/contactdesk/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Contacts() contacts.Repository
	Audit() audit.Repository
}

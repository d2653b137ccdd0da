package db

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/contactdesk/internal/server/repositories/audit"
	"github.com/dmitrijs2005/contactdesk/internal/server/repositories/contacts"
	"github.com/dmitrijs2005/contactdesk/internal/server/repositories/users"
)

type InMemoryRepositoryManager struct {
	users    users.Repository
	contacts contacts.Repository
	audit    audit.Repository
}

func (m InMemoryRepositoryManager) Conn() *sql.DB {
	return nil
}

func (m InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m InMemoryRepositoryManager) Contacts() contacts.Repository {
	return m.contacts
}

func (m InMemoryRepositoryManager) Audit() audit.Repository {
	return m.audit
}

func NewInMemoryRepositoryManager() RepositoryManager {
	auditRepo := audit.NewInMemoryRepository()
	return InMemoryRepositoryManager{
		users:    users.NewInMemoryRepository(),
		contacts: contacts.NewInMemoryRepository(auditRepo),
		audit:    auditRepo,
	}
}

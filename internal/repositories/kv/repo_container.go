package kv

import (
	"log/slog"

	portsrepo "github.com/SscSPs/finance_dashboard/internal/core/ports/repositories"
)

// NewRepositoryProvider builds every repository on top of store. A nil store is allowed.
func NewRepositoryProvider(store portsrepo.KeyValueStore, logger *slog.Logger) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LedgerStateRepo: NewLedgerStateRepository(store, logger),
		UserRepo:        NewUserRepository(store, logger),
		SessionRepo:     NewSessionRepository(store, logger),
	}
}

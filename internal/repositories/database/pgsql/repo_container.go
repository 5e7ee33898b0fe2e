package pgsql

import (
	"time"

	portsrepo "github.com/SscSPs/mandi_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every PostgreSQL-backed repository.
// timeout bounds each store call.
func NewRepositoryProvider(dbPool *pgxpool.Pool, timeout time.Duration) portsrepo.RepositoryProvider {
	base := BaseRepository{Pool: dbPool, Timeout: timeout}

	return portsrepo.RepositoryProvider{
		TransactionRepo: newPgxTransactionRepository(base),
		PartyRepo:       newPgxPartyRepository(base),
		Health:          &base,
	}
}

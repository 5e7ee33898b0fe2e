package sqlite

import (
	"database/sql"
	"time"

	portsrepo "github.com/SscSPs/mandi_ledger_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every SQLite-backed repository.
// timeout bounds each store call.
func NewRepositoryProvider(db *sql.DB, timeout time.Duration) portsrepo.RepositoryProvider {
	base := BaseRepository{DB: db, Timeout: timeout}

	return portsrepo.RepositoryProvider{
		TransactionRepo: newSQLiteTransactionRepository(base),
		PartyRepo:       newSQLitePartyRepository(base),
		Health:          &base,
	}
}

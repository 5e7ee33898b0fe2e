package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/mandi_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/mandi_ledger_app/internal/platform/config"
	"github.com/SscSPs/mandi_ledger_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/mandi_ledger_app/internal/repositories/database/sqlite"
	"github.com/SscSPs/mandi_ledger_app/pkg/database"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Store is an open ledger database with its repositories.
type Store struct {
	Repos portsrepo.RepositoryProvider
	close func()
}

// Close releases the underlying connections.
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// Open connects to the configured driver and builds the repositories.
// When migrate is true the embedded schema migrations are applied first.
func Open(ctx context.Context, cfg *config.Config, migrate bool) (*Store, error) {
	switch cfg.DBDriver {
	case database.DriverPostgres:
		if migrate {
			if err := MigratePostgres(cfg.DatabaseURL); err != nil {
				return nil, err
			}
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.DBTimeout)
		if err != nil {
			return nil, err
		}
		return &Store{
			Repos: pgsql.NewRepositoryProvider(pool, cfg.DBTimeout),
			close: func() { database.ClosePgxPool(pool) },
		}, nil

	case database.DriverSQLite:
		db, err := database.NewSQLiteDB(ctx, cfg.SQLitePath, cfg.DBTimeout)
		if err != nil {
			return nil, err
		}
		if migrate {
			if err := database.RunMigrations(database.DriverSQLite, db); err != nil {
				database.CloseSQLiteDB(db)
				return nil, err
			}
		}
		return &Store{
			Repos: sqlite.NewRepositoryProvider(db, cfg.DBTimeout),
			close: func() { database.CloseSQLiteDB(db) },
		}, nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
}

// MigratePostgres applies migrations over a short-lived database/sql handle
// opened with the pgx stdlib driver.
func MigratePostgres(databaseURL string) error {
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			slog.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database for migrations: %w", err)
	}
	return database.RunMigrations(database.DriverPostgres, migrationDB)
}

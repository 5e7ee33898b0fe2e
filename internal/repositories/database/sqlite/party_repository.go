package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/mandi_ledger_app/internal/apperrors"
	"github.com/SscSPs/mandi_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/mandi_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/mandi_ledger_app/internal/models"
	"github.com/SscSPs/mandi_ledger_app/internal/utils/mapping"
	"github.com/mattn/go-sqlite3"
)

const partyColumns = `id, name, phone, address, party_type, notes, created_at`

type SQLitePartyRepository struct {
	BaseRepository
}

func newSQLitePartyRepository(base BaseRepository) *SQLitePartyRepository {
	return &SQLitePartyRepository{BaseRepository: base}
}

// Ensure SQLitePartyRepository implements portsrepo.PartyRepositoryFacade
var _ portsrepo.PartyRepositoryFacade = (*SQLitePartyRepository)(nil)

func scanParty(row rowScanner) (models.Party, error) {
	var (
		m         models.Party
		createdAt string
	)
	if err := row.Scan(&m.ID, &m.Name, &m.Phone, &m.Address, &m.PartyType, &m.Notes, &createdAt); err != nil {
		return m, err
	}
	var err error
	m.CreatedAt, err = parseTime("created_at", createdAt)
	return m, err
}

func (r *SQLitePartyRepository) SaveParty(ctx context.Context, party domain.Party) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if party.CreatedAt.IsZero() {
		party.CreatedAt = time.Now()
	}
	m := mapping.ToModelParty(party)
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO parties (name, phone, address, party_type, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?);
	`, m.Name, m.Phone, m.Address, m.PartyType, m.Notes, formatTime(m.CreatedAt))
	if err != nil {
		if constraintCode(err) == sqlite3.ErrConstraintUnique {
			return 0, apperrors.NewConflictError(fmt.Sprintf("Party %q already exists", party.Name))
		}
		return 0, r.storageErr(ctx, "failed to insert party", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, r.storageErr(ctx, "failed to read inserted party id", err)
	}
	return id, nil
}

func (r *SQLitePartyRepository) FindPartyByID(ctx context.Context, id int64) (*domain.Party, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	m, err := scanParty(r.DB.QueryRowContext(ctx, `SELECT `+partyColumns+` FROM parties WHERE id = ?;`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Party not found")
		}
		return nil, r.storageErr(ctx, fmt.Sprintf("failed to find party %d", id), err)
	}
	p := mapping.ToDomainParty(m)
	return &p, nil
}

func (r *SQLitePartyRepository) ListParties(ctx context.Context) ([]domain.Party, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx, `SELECT `+partyColumns+` FROM parties ORDER BY name;`)
	if err != nil {
		return nil, r.storageErr(ctx, "failed to list parties", err)
	}
	defer rows.Close()

	parties := []domain.Party{}
	for rows.Next() {
		m, err := scanParty(rows)
		if err != nil {
			return nil, r.storageErr(ctx, "failed to scan party row", err)
		}
		parties = append(parties, mapping.ToDomainParty(m))
	}
	if err := rows.Err(); err != nil {
		return nil, r.storageErr(ctx, "error iterating party rows", err)
	}
	return parties, nil
}

// DeleteParty refuses to remove a party that transactions still reference.
func (r *SQLitePartyRepository) DeleteParty(ctx context.Context, id int64) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var refs int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions WHERE party_id = ?;`, id).Scan(&refs); err != nil {
		return r.storageErr(ctx, fmt.Sprintf("failed to count references to party %d", id), err)
	}
	if refs > 0 {
		return apperrors.NewConflictError(fmt.Sprintf("Party is referenced by %d transactions", refs))
	}

	res, err := r.DB.ExecContext(ctx, `DELETE FROM parties WHERE id = ?;`, id)
	if err != nil {
		if constraintCode(err) == sqlite3.ErrConstraintForeignKey {
			return apperrors.NewConflictError("Party is referenced by transactions")
		}
		return r.storageErr(ctx, fmt.Sprintf("failed to delete party %d", id), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return r.storageErr(ctx, fmt.Sprintf("failed to delete party %d", id), err)
	}
	if n == 0 {
		return apperrors.NewNotFoundError("Party not found")
	}
	return nil
}

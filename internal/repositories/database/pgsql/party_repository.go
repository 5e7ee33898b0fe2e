package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/mandi_ledger_app/internal/apperrors"
	"github.com/SscSPs/mandi_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/mandi_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/mandi_ledger_app/internal/models"
	"github.com/SscSPs/mandi_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxPartyRepository struct {
	BaseRepository
}

func newPgxPartyRepository(base BaseRepository) *PgxPartyRepository {
	return &PgxPartyRepository{BaseRepository: base}
}

// Ensure PgxPartyRepository implements portsrepo.PartyRepositoryFacade
var _ portsrepo.PartyRepositoryFacade = (*PgxPartyRepository)(nil)

func (r *PgxPartyRepository) SaveParty(ctx context.Context, party domain.Party) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	m := mapping.ToModelParty(party)
	var id int64
	err := r.Pool.QueryRow(ctx, `
		INSERT INTO parties (name, phone, address, party_type, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id;
	`, m.Name, m.Phone, m.Address, m.PartyType, m.Notes, m.CreatedAt).Scan(&id)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return 0, apperrors.NewConflictError(fmt.Sprintf("Party %q already exists", party.Name))
		}
		return 0, r.storageErr(ctx, "failed to insert party", err)
	}
	return id, nil
}

func (r *PgxPartyRepository) FindPartyByID(ctx context.Context, id int64) (*domain.Party, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var m models.Party
	err := r.Pool.QueryRow(ctx, `
		SELECT id, name, phone, address, party_type, notes, created_at
		FROM parties WHERE id = $1;
	`, id).Scan(&m.ID, &m.Name, &m.Phone, &m.Address, &m.PartyType, &m.Notes, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Party not found")
		}
		return nil, r.storageErr(ctx, fmt.Sprintf("failed to find party %d", id), err)
	}
	p := mapping.ToDomainParty(m)
	return &p, nil
}

func (r *PgxPartyRepository) ListParties(ctx context.Context) ([]domain.Party, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.Pool.Query(ctx, `
		SELECT id, name, phone, address, party_type, notes, created_at
		FROM parties ORDER BY name;
	`)
	if err != nil {
		return nil, r.storageErr(ctx, "failed to list parties", err)
	}
	defer rows.Close()

	parties := []domain.Party{}
	for rows.Next() {
		var m models.Party
		if err := rows.Scan(&m.ID, &m.Name, &m.Phone, &m.Address, &m.PartyType, &m.Notes, &m.CreatedAt); err != nil {
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
func (r *PgxPartyRepository) DeleteParty(ctx context.Context, id int64) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var refs int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE party_id = $1;`, id).Scan(&refs); err != nil {
		return r.storageErr(ctx, fmt.Sprintf("failed to count references to party %d", id), err)
	}
	if refs > 0 {
		return apperrors.NewConflictError(fmt.Sprintf("Party is referenced by %d transactions", refs))
	}

	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM parties WHERE id = $1;`, id)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return apperrors.NewConflictError("Party is referenced by transactions")
		}
		return r.storageErr(ctx, fmt.Sprintf("failed to delete party %d", id), err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("Party not found")
	}
	return nil
}

package repositories

import (
	"context"

	"github.com/SscSPs/mandi_ledger_app/internal/core/domain"
)

// PartyReader defines read operations for the counterparty directory
type PartyReader interface {
	FindPartyByID(ctx context.Context, id int64) (*domain.Party, error)
	// ListParties returns every party ordered by name.
	ListParties(ctx context.Context) ([]domain.Party, error)
}

// PartyWriter defines write operations for the counterparty directory
type PartyWriter interface {
	SaveParty(ctx context.Context, party domain.Party) (int64, error)
	// DeleteParty fails with apperrors.ErrConflict while transactions still reference the party.
	DeleteParty(ctx context.Context, id int64) error
}

// PartyRepositoryFacade combines all party repository interfaces
type PartyRepositoryFacade interface {
	PartyReader
	PartyWriter
}

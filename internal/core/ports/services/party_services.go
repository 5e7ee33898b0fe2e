package services

import (
	"context"

	"github.com/SscSPs/mandi_ledger_app/internal/core/domain"
	"github.com/SscSPs/mandi_ledger_app/internal/dto"
)

// PartyReaderSvc defines read operations for the counterparty directory
type PartyReaderSvc interface {
	GetParty(ctx context.Context, id int64) (*domain.Party, error)
	ListParties(ctx context.Context) ([]domain.Party, error)
}

// PartyWriterSvc defines write operations for the counterparty directory
type PartyWriterSvc interface {
	CreateParty(ctx context.Context, req dto.CreatePartyRequest) (*domain.Party, error)
	DeleteParty(ctx context.Context, id int64) error
}

// PartySvcFacade combines all party service interfaces
type PartySvcFacade interface {
	PartyReaderSvc
	PartyWriterSvc
}

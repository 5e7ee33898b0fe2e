package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/mandi_ledger_app/internal/apperrors"
	"github.com/SscSPs/mandi_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/mandi_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mandi_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/mandi_ledger_app/internal/dto"
	"github.com/SscSPs/mandi_ledger_app/internal/utils/validation"
)

type partyService struct {
	BaseService
	partyRepo portsrepo.PartyRepositoryFacade
	validator *validation.Validator
}

// NewPartyService creates the counterparty directory service.
func NewPartyService(repo portsrepo.PartyRepositoryFacade, validator *validation.Validator, logger *slog.Logger) portssvc.PartySvcFacade {
	return &partyService{
		BaseService: BaseService{Logger: logger},
		partyRepo:   repo,
		validator:   validator,
	}
}

var _ portssvc.PartySvcFacade = (*partyService)(nil)

// CreateParty validates and stores a new directory entry.
func (s *partyService) CreateParty(ctx context.Context, req dto.CreatePartyRequest) (*domain.Party, error) {
	if err := s.validator.ValidateName(req.Name, "Party Name"); err != nil {
		s.reportFailure(ctx, "create_party", err)
		return nil, err
	}
	switch req.PartyType {
	case domain.PartyBuyer, domain.PartySeller, domain.PartyBoth:
	default:
		err := apperrors.NewValidationError(fmt.Sprintf("Unknown party type %q", req.PartyType))
		s.reportFailure(ctx, "create_party", err)
		return nil, err
	}
	if err := s.validator.ValidateNotes(req.Notes); err != nil {
		s.reportFailure(ctx, "create_party", err)
		return nil, err
	}

	party := domain.Party{
		Name:      validation.SanitizeString(req.Name),
		Phone:     validation.SanitizeString(req.Phone),
		Address:   validation.SanitizeString(req.Address),
		PartyType: req.PartyType,
		Notes:     validation.SanitizeString(req.Notes),
		CreatedAt: time.Now().UTC(),
	}

	id, err := s.partyRepo.SaveParty(ctx, party)
	if err != nil {
		s.reportFailure(ctx, "create_party", err, slog.String("party_name", party.Name))
		return nil, err
	}
	party.ID = id

	s.LogInfo(ctx, "Party created", slog.Int64("party_id", id), slog.String("party_name", party.Name))
	return &party, nil
}

// GetParty retrieves a directory entry.
func (s *partyService) GetParty(ctx context.Context, id int64) (*domain.Party, error) {
	return s.partyRepo.FindPartyByID(ctx, id)
}

// ListParties returns the whole directory ordered by name.
func (s *partyService) ListParties(ctx context.Context) ([]domain.Party, error) {
	parties, err := s.partyRepo.ListParties(ctx)
	if err != nil {
		s.reportFailure(ctx, "list_parties", err)
		return nil, err
	}
	return parties, nil
}

// DeleteParty removes a directory entry no transaction references.
func (s *partyService) DeleteParty(ctx context.Context, id int64) error {
	if err := s.partyRepo.DeleteParty(ctx, id); err != nil {
		s.reportFailure(ctx, "delete_party", err, slog.Int64("party_id", id))
		return err
	}
	s.LogInfo(ctx, "Party deleted", slog.Int64("party_id", id))
	return nil
}

package dto

import (
	"time"

	"github.com/SscSPs/mandi_ledger_app/internal/core/domain"
)

// CreatePartyRequest defines the data needed to add a directory entry.
type CreatePartyRequest struct {
	Name      string           `json:"name" binding:"required"`
	Phone     string           `json:"phone" binding:"omitempty,max=20"`
	Address   string           `json:"address" binding:"omitempty,max=250"`
	PartyType domain.PartyType `json:"partyType" binding:"required,oneof=BUYER SELLER BOTH"`
	Notes     string           `json:"notes"`
}

// PartyResponse defines the data returned for a directory entry.
type PartyResponse struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	Phone     string           `json:"phone,omitempty"`
	Address   string           `json:"address,omitempty"`
	PartyType domain.PartyType `json:"partyType"`
	Notes     string           `json:"notes,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

// ToPartyResponse converts a domain.Party to PartyResponse DTO
func ToPartyResponse(p *domain.Party) PartyResponse {
	return PartyResponse{
		ID:        p.ID,
		Name:      p.Name,
		Phone:     p.Phone,
		Address:   p.Address,
		PartyType: p.PartyType,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
	}
}

// ToListPartyResponse converts a slice of domain.Party to response DTOs
func ToListPartyResponse(parties []domain.Party) []PartyResponse {
	res := make([]PartyResponse, len(parties))
	for i := range parties {
		res[i] = ToPartyResponse(&parties[i])
	}
	return res
}

package mapping

import (
	"github.com/SscSPs/mandi_ledger_app/internal/core/domain"
	"github.com/SscSPs/mandi_ledger_app/internal/models"
)

// ToModelParty converts a domain.Party to its storage shape.
func ToModelParty(d domain.Party) models.Party {
	return models.Party{
		ID:        d.ID,
		Name:      d.Name,
		Phone:     nullIfEmpty(d.Phone),
		Address:   nullIfEmpty(d.Address),
		PartyType: string(d.PartyType),
		Notes:     nullIfEmpty(d.Notes),
		CreatedAt: d.CreatedAt,
	}
}

// ToDomainParty converts a stored directory entry to a domain.Party.
func ToDomainParty(m models.Party) domain.Party {
	return domain.Party{
		ID:        m.ID,
		Name:      m.Name,
		Phone:     emptyIfNull(m.Phone),
		Address:   emptyIfNull(m.Address),
		PartyType: domain.PartyType(m.PartyType),
		Notes:     emptyIfNull(m.Notes),
		CreatedAt: m.CreatedAt,
	}
}

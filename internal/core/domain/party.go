package domain

import "time"

// PartyType classifies a directory entry by the role it usually plays.
type PartyType string

const (
	PartyBuyer  PartyType = "BUYER"
	PartySeller PartyType = "SELLER"
	PartyBoth   PartyType = "BOTH"
)

// Party is a contact in the counterparty directory. It carries no balance;
// ledgers are always derived from transactions grouped by name.
type Party struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	PartyType PartyType `json:"partyType"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Accepts reports whether the party may act in the given transaction role.
func (p *Party) Accepts(t TransactionType) bool {
	switch p.PartyType {
	case PartyBoth:
		return true
	case PartyBuyer:
		return t == Buy
	case PartySeller:
		return t == Sell
	}
	return false
}

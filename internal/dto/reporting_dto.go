package dto

import (
	"github.com/SscSPs/mandi_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PartyLedgerResponse is the per-counterparty ledger for one role.
type PartyLedgerResponse struct {
	Role        domain.PartyRole      `json:"role"`
	Rows        []domain.PartyBalance `json:"rows"`
	TotalDue    decimal.Decimal       `json:"totalDue"`
	TotalPaid   decimal.Decimal       `json:"totalPaid"`
	Outstanding decimal.Decimal       `json:"outstanding"`
}

// ToPartyLedgerResponse totals the rows of a ledger.
func ToPartyLedgerResponse(role domain.PartyRole, rows []domain.PartyBalance) PartyLedgerResponse {
	res := PartyLedgerResponse{
		Role:        role,
		Rows:        rows,
		TotalDue:    decimal.Zero,
		TotalPaid:   decimal.Zero,
		Outstanding: decimal.Zero,
	}
	for _, r := range rows {
		res.TotalDue = res.TotalDue.Add(r.Due)
		res.TotalPaid = res.TotalPaid.Add(r.Paid)
		res.Outstanding = res.Outstanding.Add(r.Balance)
	}
	return res
}

// SettingsResponse shows the active rates and limits.
type SettingsResponse struct {
	Rates  map[string]decimal.Decimal `json:"rates"`
	Limits map[string]decimal.Decimal `json:"limits"`
	Driver string                     `json:"dbDriver"`
}

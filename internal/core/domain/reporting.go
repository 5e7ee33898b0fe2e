package domain

import "github.com/shopspring/decimal"

// PartyRole selects which counterparty column a ledger groups by.
type PartyRole string

const (
	RoleBuyer  PartyRole = "buyer"
	RoleSeller PartyRole = "seller"
)

// Summary holds global totals over a set of transactions.
// TypeCounts and StatusCounts always carry every known key, zero or not.
type Summary struct {
	TotalBuy     decimal.Decimal           `json:"totalBuy"`
	TotalSell    decimal.Decimal           `json:"totalSell"`
	ProfitLoss   decimal.Decimal           `json:"profitLoss"`
	PendingCount int                       `json:"pendingCount"`
	TotalCount   int                       `json:"totalCount"`
	TypeCounts   map[TransactionType]int   `json:"typeCounts"`
	StatusCounts map[TransactionStatus]int `json:"statusCounts"`
}

// PartyBalance is one row of a counterparty ledger. Amounts are base amounts;
// the trader's own charges and deductions are never part of a party's balance.
type PartyBalance struct {
	Name             string          `json:"name"`
	Due              decimal.Decimal `json:"due"`
	Paid             decimal.Decimal `json:"paid"`
	Balance          decimal.Decimal `json:"balance"`
	TransactionCount int             `json:"transactionCount"`
	Cleared          bool            `json:"cleared"`
}

// ExpenseBreakdown splits totals into base amounts and the trader's expenses.
type ExpenseBreakdown struct {
	BuyBase        decimal.Decimal `json:"buyBase"`
	BuyExpenses    decimal.Decimal `json:"buyExpenses"`
	TotalCost      decimal.Decimal `json:"totalCost"`
	SellBase       decimal.Decimal `json:"sellBase"`
	SellDeductions decimal.Decimal `json:"sellDeductions"`
	NetReceivable  decimal.Decimal `json:"netReceivable"`
	TotalExpenses  decimal.Decimal `json:"totalExpenses"`
}

// PendingInventory describes purchases still waiting for a settling sale.
type PendingInventory struct {
	Count         int             `json:"count"`
	Quantity      decimal.Decimal `json:"quantity"`
	TotalInvested decimal.Decimal `json:"totalInvested"`
}

// Dashboard bundles the report views shown together.
type Dashboard struct {
	Summary  Summary          `json:"summary"`
	Expenses ExpenseBreakdown `json:"expenses"`
	Pending  PendingInventory `json:"pending"`
	Buyers   []PartyBalance   `json:"buyers"`
	Sellers  []PartyBalance   `json:"sellers"`
}

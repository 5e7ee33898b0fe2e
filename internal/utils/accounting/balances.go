package accounting

import (
	"sort"

	"github.com/SscSPs/mandi_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ClearedTolerance is the largest absolute balance still shown as settled: one paisa.
func ClearedTolerance() decimal.Decimal {
	return decimal.New(1, -ChargePlaces)
}

// Summarize totals total_amount per type. It does not modify txns.
func Summarize(txns []domain.Transaction) domain.Summary {
	s := domain.Summary{
		TotalBuy:     decimal.Zero,
		TotalSell:    decimal.Zero,
		TotalCount:   len(txns),
		TypeCounts:   map[domain.TransactionType]int{domain.Buy: 0, domain.Sell: 0},
		StatusCounts: map[domain.TransactionStatus]int{domain.Pending: 0, domain.Sold: 0, domain.Completed: 0},
	}
	for i := range txns {
		t := &txns[i]
		s.TypeCounts[t.TransactionType]++
		s.StatusCounts[t.Status]++
		switch t.TransactionType {
		case domain.Buy:
			s.TotalBuy = s.TotalBuy.Add(t.TotalAmount)
		case domain.Sell:
			s.TotalSell = s.TotalSell.Add(t.TotalAmount)
		}
		if t.Status == domain.Pending {
			s.PendingCount++
		}
	}
	s.ProfitLoss = s.TotalSell.Sub(s.TotalBuy)
	return s
}

// PartyLedger groups transactions of the given role by counterparty name and
// aggregates base amounts. Rows with an empty name are skipped. The result is sorted by name.
func PartyLedger(txns []domain.Transaction, role domain.PartyRole) []domain.PartyBalance {
	wantType := domain.Buy
	if role == domain.RoleSeller {
		wantType = domain.Sell
	}

	byName := make(map[string]*domain.PartyBalance)
	for i := range txns {
		t := &txns[i]
		if t.TransactionType != wantType {
			continue
		}
		name := t.Counterparty()
		if name == "" {
			continue
		}
		row, ok := byName[name]
		if !ok {
			row = &domain.PartyBalance{Name: name, Due: decimal.Zero, Paid: decimal.Zero}
			byName[name] = row
		}
		row.Due = row.Due.Add(baseOf(t))
		row.Paid = row.Paid.Add(t.AmountPaid)
		row.TransactionCount++
	}

	out := make([]domain.PartyBalance, 0, len(byName))
	for _, row := range byName {
		row.Balance = row.Due.Sub(row.Paid)
		row.Cleared = row.Balance.Abs().LessThanOrEqual(ClearedTolerance())
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ExpenseBreakdown separates base amounts from the trader's own charges.
func ExpenseBreakdown(txns []domain.Transaction) domain.ExpenseBreakdown {
	b := domain.ExpenseBreakdown{
		BuyBase:        decimal.Zero,
		BuyExpenses:    decimal.Zero,
		SellBase:       decimal.Zero,
		SellDeductions: decimal.Zero,
	}
	for i := range txns {
		t := &txns[i]
		switch t.TransactionType {
		case domain.Buy:
			b.BuyBase = b.BuyBase.Add(baseOf(t))
			b.BuyExpenses = b.BuyExpenses.Add(t.Expenses())
		case domain.Sell:
			b.SellBase = b.SellBase.Add(baseOf(t))
			b.SellDeductions = b.SellDeductions.Add(t.Expenses())
		}
	}
	b.TotalCost = b.BuyBase.Add(b.BuyExpenses)
	b.NetReceivable = b.SellBase.Sub(b.SellDeductions)
	b.TotalExpenses = b.BuyExpenses.Add(b.SellDeductions)
	return b
}

// PendingInventory counts purchases still awaiting a settling sale.
func PendingInventory(txns []domain.Transaction) domain.PendingInventory {
	p := domain.PendingInventory{Quantity: decimal.Zero, TotalInvested: decimal.Zero}
	for i := range txns {
		t := &txns[i]
		if t.TransactionType != domain.Buy || t.Status != domain.Pending {
			continue
		}
		p.Count++
		p.Quantity = p.Quantity.Add(t.Quantity)
		p.TotalInvested = p.TotalInvested.Add(t.TotalAmount)
	}
	return p
}

// baseOf prefers the stored base amount and recomputes it for rows written without one.
func baseOf(t *domain.Transaction) decimal.Decimal {
	if t.BaseAmount.IsPositive() {
		return t.BaseAmount
	}
	return BaseAmount(t.PricePerUnit, t.Quantity)
}

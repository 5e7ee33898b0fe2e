package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/SscSPs/mandi_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/mandi_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/mandi_ledger_app/internal/dto"
	"github.com/SscSPs/mandi_ledger_app/internal/platform/storage"
	"github.com/SscSPs/mandi_ledger_app/internal/utils"
	"github.com/SscSPs/mandi_ledger_app/pkg/database"
	"github.com/shopspring/decimal"
)

// Commands is the mandictl command tree.
type Commands struct {
	Globals

	Buy     BuyCmd     `cmd:"" help:"Record a purchase."`
	Sell    SellCmd    `cmd:"" help:"Record a sale, optionally settling a pending purchase."`
	Pay     PayCmd     `cmd:"" help:"Set the cumulative amount paid on a transaction."`
	Delete  DeleteCmd  `cmd:"" help:"Delete a transaction."`
	List    ListCmd    `cmd:"" help:"List transactions, newest first."`
	Pending PendingCmd `cmd:"" help:"List purchases awaiting a sale."`
	Summary SummaryCmd `cmd:"" help:"Show ledger totals and expenses."`
	Ledger  LedgerCmd  `cmd:"" help:"Show per-party balances."`
	Migrate MigrateCmd `cmd:"" help:"Apply database migrations."`
	Token   TokenCmd   `cmd:"" help:"Issue a bearer token for the HTTP API."`
}

// parseAmount turns an optional flag into a decimal; an empty flag stays nil.
func parseAmount(label, value string) (*decimal.Decimal, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", label)
	}
	return &d, nil
}

type TradeFlags struct {
	Item     string `help:"Commodity name." required:""`
	Quantity string `help:"Quantity in quintals." required:"" short:"q"`
	Price    string `help:"Price per quintal." required:"" short:"p"`
	Paid     string `help:"Amount paid so far."`
	Notes    string `help:"Free-form notes."`
	Party    *int64 `help:"Party directory id."`
}

func (f *TradeFlags) amounts() (qty, price, paid *decimal.Decimal, err error) {
	if qty, err = parseAmount("Quantity", f.Quantity); err != nil {
		return
	}
	if price, err = parseAmount("Price per Unit", f.Price); err != nil {
		return
	}
	paid, err = parseAmount("Amount Paid", f.Paid)
	return
}

type BuyCmd struct {
	Buyer string `arg:"" help:"Name of the party the goods were bought from."`
	TradeFlags `embed:""`
}

func (cmd *BuyCmd) Run(g *Globals) error {
	qty, price, paid, err := cmd.amounts()
	if err != nil {
		return err
	}
	return g.withServices(func(ctx context.Context, svc *portssvc.ServiceContainer) error {
		id, err := svc.Transaction.RecordPurchase(ctx, dto.RecordPurchaseRequest{
			BuyerName:    cmd.Buyer,
			ItemName:     cmd.Item,
			Quantity:     qty,
			PricePerUnit: price,
			AmountPaid:   paid,
			Notes:        cmd.Notes,
			PartyID:      cmd.Party,
		})
		if err != nil {
			return err
		}
		return printTransaction(ctx, os.Stdout, svc, id)
	})
}

type SellCmd struct {
	Seller string `arg:"" help:"Name of the party the goods were sold to."`
	TradeFlags `embed:""`
	Link *int64 `help:"Id of the pending purchase this sale settles."`
}

func (cmd *SellCmd) Run(g *Globals) error {
	qty, price, paid, err := cmd.amounts()
	if err != nil {
		return err
	}
	return g.withServices(func(ctx context.Context, svc *portssvc.ServiceContainer) error {
		id, err := svc.Transaction.RecordSale(ctx, dto.RecordSaleRequest{
			SellerName:       cmd.Seller,
			ItemName:         cmd.Item,
			Quantity:         qty,
			PricePerUnit:     price,
			AmountPaid:       paid,
			Notes:            cmd.Notes,
			PartyID:          cmd.Party,
			LinkedPurchaseID: cmd.Link,
		})
		if err != nil {
			return err
		}
		return printTransaction(ctx, os.Stdout, svc, id)
	})
}

type PayCmd struct {
	ID     int64  `arg:"" help:"Transaction id."`
	Amount string `arg:"" help:"New cumulative amount paid."`
}

func (cmd *PayCmd) Run(g *Globals) error {
	amount, err := parseAmount("Amount Paid", cmd.Amount)
	if err != nil {
		return err
	}
	return g.withServices(func(ctx context.Context, svc *portssvc.ServiceContainer) error {
		if err := svc.Transaction.UpdatePayment(ctx, cmd.ID, amount); err != nil {
			return err
		}
		return printTransaction(ctx, os.Stdout, svc, cmd.ID)
	})
}

type DeleteCmd struct {
	ID int64 `arg:"" help:"Transaction id."`
}

func (cmd *DeleteCmd) Run(g *Globals) error {
	return g.withServices(func(ctx context.Context, svc *portssvc.ServiceContainer) error {
		if err := svc.Transaction.DeleteTransaction(ctx, cmd.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted transaction %d\n", cmd.ID)
		return nil
	})
}

type ListCmd struct {
	Type   string `help:"Only BUY or SELL rows." enum:",BUY,SELL" default:""`
	Status string `help:"Only rows with this status." enum:",PENDING,SOLD,COMPLETED" default:""`
	Item   string `help:"Item name substring."`
	Party  string `help:"Exact buyer or seller name."`
	Limit  int    `help:"Maximum rows to show (0 for all)." default:"50"`
}

func (cmd *ListCmd) Run(g *Globals) error {
	return g.withServices(func(ctx context.Context, svc *portssvc.ServiceContainer) error {
		resp, err := svc.Transaction.ListTransactions(ctx, dto.ListTransactionsParams{
			Type:   cmd.Type,
			Status: cmd.Status,
			Item:   cmd.Item,
			Party:  cmd.Party,
			Limit:  cmd.Limit,
		})
		if err != nil {
			return err
		}
		writeTransactions(os.Stdout, resp.Transactions)
		return nil
	})
}

type PendingCmd struct{}

func (cmd *PendingCmd) Run(g *Globals) error {
	return g.withServices(func(ctx context.Context, svc *portssvc.ServiceContainer) error {
		txns, err := svc.Transaction.ListPending(ctx)
		if err != nil {
			return err
		}
		writeTransactions(os.Stdout, dto.ToListTransactionResponse(txns))
		return nil
	})
}

type SummaryCmd struct{}

func (cmd *SummaryCmd) Run(g *Globals) error {
	return g.withServices(func(ctx context.Context, svc *portssvc.ServiceContainer) error {
		dash, err := svc.Ledger.Dashboard(ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		s, e, p := dash.Summary, dash.Expenses, dash.Pending
		fmt.Fprintf(tw, "Total bought\t%s\n", utils.FormatRupees(s.TotalBuy))
		fmt.Fprintf(tw, "Total sold\t%s\n", utils.FormatRupees(s.TotalSell))
		fmt.Fprintf(tw, "Profit / loss\t%s\n", utils.FormatRupees(s.ProfitLoss))
		fmt.Fprintf(tw, "Transactions\t%d (%d pending)\n", s.TotalCount, s.PendingCount)
		fmt.Fprintf(tw, "By type\t%d buy, %d sell\n", s.TypeCounts[domain.Buy], s.TypeCounts[domain.Sell])
		fmt.Fprintf(tw, "By status\t%d pending, %d sold, %d completed\n",
			s.StatusCounts[domain.Pending], s.StatusCounts[domain.Sold], s.StatusCounts[domain.Completed])
		fmt.Fprintf(tw, "Buy expenses\t%s\n", utils.FormatRupees(e.BuyExpenses))
		fmt.Fprintf(tw, "Sell deductions\t%s\n", utils.FormatRupees(e.SellDeductions))
		fmt.Fprintf(tw, "Pending stock\t%s in %d lots, %s invested\n",
			utils.FormatQuantity(p.Quantity), p.Count, utils.FormatRupees(p.TotalInvested))
		return tw.Flush()
	})
}

type LedgerCmd struct {
	Role string `arg:"" enum:"buyer,seller" help:"Which counterparties to show (buyer or seller)."`
}

func (cmd *LedgerCmd) Run(g *Globals) error {
	return g.withServices(func(ctx context.Context, svc *portssvc.ServiceContainer) error {
		rows, err := svc.Ledger.PartyLedger(ctx, domain.PartyRole(cmd.Role))
		if err != nil {
			return err
		}
		res := dto.ToPartyLedgerResponse(domain.PartyRole(cmd.Role), rows)
		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tDUE\tPAID\tBALANCE\tTXNS\t")
		for _, r := range res.Rows {
			status := ""
			if r.Cleared {
				status = "cleared"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n", r.Name,
				utils.FormatRupees(r.Due), utils.FormatRupees(r.Paid), utils.FormatRupees(r.Balance), r.TransactionCount, status)
		}
		fmt.Fprintf(tw, "TOTAL\t%s\t%s\t%s\t\t\n",
			utils.FormatRupees(res.TotalDue), utils.FormatRupees(res.TotalPaid), utils.FormatRupees(res.Outstanding))
		return tw.Flush()
	})
}

type MigrateCmd struct{}

func (cmd *MigrateCmd) Run(g *Globals) error {
	if g.cfg.DBDriver == database.DriverPostgres {
		return storage.MigratePostgres(g.cfg.DatabaseURL)
	}
	store, err := storage.Open(context.Background(), g.cfg, true)
	if err != nil {
		return err
	}
	store.Close()
	return nil
}

type TokenCmd struct {
	Subject string `arg:"" help:"Token subject, e.g. the operator's name."`
}

func (cmd *TokenCmd) Run(g *Globals) error {
	token, err := utils.GenerateJWT(cmd.Subject, g.cfg.JWTSecret, g.cfg.JWTExpiryDuration, g.cfg.JWTIssuer)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}

func printTransaction(ctx context.Context, w io.Writer, svc *portssvc.ServiceContainer, id int64) error {
	txn, err := svc.Transaction.GetTransaction(ctx, id)
	if err != nil {
		return err
	}
	writeTransactions(w, []dto.TransactionResponse{dto.ToTransactionResponse(txn)})
	return nil
}

func writeTransactions(w io.Writer, txns []dto.TransactionResponse) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tPARTY\tITEM\tQTY\tRATE\tTOTAL\tPAID\tSTATUS\tDATE\t")
	for _, t := range txns {
		party := t.BuyerName
		if t.TransactionType == domain.Sell {
			party = t.SellerName
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			t.ID, t.TransactionType, party, t.ItemName,
			utils.FormatQuantity(t.Quantity), utils.FormatRupees(t.PricePerUnit),
			utils.FormatRupees(t.TotalAmount), utils.FormatRupees(t.AmountPaid),
			t.Status, t.TransactionDate.Format("2006-01-02 15:04"))
	}
	_ = tw.Flush()
}

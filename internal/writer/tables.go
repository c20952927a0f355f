package writer

import (
	"strconv"

	"github.com/insightdelivered/statement-converter/internal/models"
	"github.com/insightdelivered/statement-converter/internal/money"
)

// Table names, in output order.
const (
	TableSummary         = "Account Summary"
	TableDeposits        = "Deposits & Other Credits"
	TableATMWithdrawals  = "ATM Withdrawals & Debits"
	TableChecksPaid      = "Checks Paid"
	TableCardPurchases   = "Card Purchases"
	TableAllTransactions = "All Transactions"
)

const notAvailable = "N/A"

// Table is one named block of output: a sheet in a workbook or a section of
// a delimited-text document.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Tables lays a statement out as an ordered set of tables. The account
// summary is always present; category tables are emitted only when they
// have rows, and the combined view only when there is at least one
// transaction. The statement is not modified.
func Tables(st *models.Statement) []Table {
	tables := []Table{summaryTable(st)}

	if len(st.Deposits) > 0 {
		t := Table{Name: TableDeposits, Header: []string{"Date Credited", "Description", "Amount"}}
		for _, d := range st.Deposits {
			t.Rows = append(t.Rows, []string{d.DateCredited, d.Description, money.Format(d.Amount)})
		}
		tables = append(tables, t)
	}

	if len(st.ATMWithdrawals) > 0 {
		t := Table{Name: TableATMWithdrawals, Header: []string{"Transaction Date", "Date Posted", "Description", "Amount"}}
		for _, w := range st.ATMWithdrawals {
			t.Rows = append(t.Rows, []string{w.TranDate, w.DatePosted, w.Description, money.Format(w.Amount)})
		}
		tables = append(tables, t)
	}

	if len(st.ChecksPaid) > 0 {
		t := Table{Name: TableChecksPaid, Header: []string{"Date Paid", "Check Number", "Amount", "Reference Number"}}
		for _, c := range st.ChecksPaid {
			t.Rows = append(t.Rows, []string{c.DatePaid, c.CheckNumber, money.Format(c.Amount), c.ReferenceNumber})
		}
		tables = append(tables, t)
	}

	if len(st.CardPurchases) > 0 {
		t := Table{Name: TableCardPurchases, Header: []string{"Transaction Date", "Date Posted", "Description", "Amount"}}
		for _, p := range st.CardPurchases {
			t.Rows = append(t.Rows, []string{p.TranDate, p.DatePosted, p.Description, money.Format(p.Amount)})
		}
		tables = append(tables, t)
	}

	if !st.IsEmpty() {
		t := Table{Name: TableAllTransactions, Header: []string{"Date", "Type", "Description", "Amount"}}
		for _, c := range Combine(st) {
			t.Rows = append(t.Rows, []string{c.Date, string(c.Type), c.Description, money.Format(c.Amount)})
		}
		tables = append(tables, t)
	}

	return tables
}

func summaryTable(st *models.Statement) Table {
	info := st.AccountInfo
	return Table{
		Name:   TableSummary,
		Header: []string{"Field", "Value"},
		Rows: [][]string{
			{"Account Number", orNA(info.AccountNumber)},
			{"Statement Date", orNA(info.StatementDate)},
			{"Beginning Balance", money.FormatOptional(info.BeginningBalance)},
			{"Ending Balance", money.FormatOptional(info.EndingBalance)},
			{"", ""},
			{"Transaction Summary", ""},
			{"Total Deposits", strconv.Itoa(len(st.Deposits))},
			{"Total ATM Withdrawals", strconv.Itoa(len(st.ATMWithdrawals))},
			{"Total Checks Paid", strconv.Itoa(len(st.ChecksPaid))},
			{"Total Card Purchases", strconv.Itoa(len(st.CardPurchases))},
		},
	}
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/insightdelivered/statement-converter/internal/models"
	"github.com/insightdelivered/statement-converter/internal/money"
)

// Layout selects how the delimited-text document is arranged.
type Layout string

const (
	// LayoutSections writes each table in turn: a line with the table name,
	// the header, the rows and an empty line before the next table.
	LayoutSections Layout = "sections"
	// LayoutSideBySide places the account summary and the four categories
	// next to each other, one transaction of each category per line.
	LayoutSideBySide Layout = "side-by-side"
)

// ParseLayout maps a user supplied name to a Layout. The empty string
// selects LayoutSections.
func ParseLayout(s string) (Layout, error) {
	switch Layout(strings.ToLower(strings.TrimSpace(s))) {
	case "", LayoutSections:
		return LayoutSections, nil
	case LayoutSideBySide:
		return LayoutSideBySide, nil
	default:
		return "", fmt.Errorf("unsupported csv layout: %q", s)
	}
}

// CSVWriter writes a statement as delimited text.
type CSVWriter struct {
	Layout Layout
}

// WriteToFile writes the statement to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, st *models.Statement) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, st)
}

// Write writes the statement in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, st *models.Statement) error {
	writer := csv.NewWriter(out)

	var records [][]string
	switch w.Layout {
	case "", LayoutSections:
		records = sectionRecords(Tables(st))
	case LayoutSideBySide:
		records = sideBySideRecords(st)
	default:
		return fmt.Errorf("unsupported csv layout: %q", w.Layout)
	}

	for _, rec := range records {
		if err := writer.Write(rec); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV output: %w", err)
	}
	return nil
}

func sectionRecords(tables []Table) [][]string {
	var records [][]string
	for i, t := range tables {
		if i > 0 {
			records = append(records, []string{})
		}
		records = append(records, []string{t.Name}, t.Header)
		records = append(records, t.Rows...)
	}
	return records
}

var sideBySideHeader = []string{
	"Account Summary", "Value", "",
	"Description", "Date Credited", "Amount", "",
	"Description", "Tran Date", "Date Posted", "Amount", "",
	"Date Paid", "Check Number", "Amount", "Reference Number", "",
	"Description", "Tran Date", "Date Posted", "Amount",
}

// sideBySideRecords renders the combined spreadsheet-style layout. Debit
// amounts are shown as absolute values here since each column group
// already names its direction.
func sideBySideRecords(st *models.Statement) [][]string {
	info := st.AccountInfo
	summary := [][2]string{
		{"Statement Date", orNA(info.StatementDate)},
		{"Beginning Balance", money.FormatOptional(info.BeginningBalance)},
		{"Ending Balance", money.FormatOptional(info.EndingBalance)},
	}

	records := [][]string{
		sideBySideHeader,
		{
			"Account Number", info.AccountNumber, "",
			"DEPOSITS & OTHER CREDITS", "", "", "",
			"ATM WITHDRAWALS & DEBITS", "", "", "", "",
			"CHECKS PAID", "", "", "", "",
			"CARD PURCHASES", "", "", "",
		},
	}

	n := max(len(summary), len(st.Deposits), len(st.ATMWithdrawals), len(st.ChecksPaid), len(st.CardPurchases))
	for i := 0; i < n; i++ {
		rec := make([]string, 0, len(sideBySideHeader))

		if i < len(summary) {
			rec = append(rec, summary[i][0], summary[i][1], "")
		} else {
			rec = append(rec, "", "", "")
		}

		if i < len(st.Deposits) {
			d := st.Deposits[i]
			rec = append(rec, d.Description, d.DateCredited, money.Format(d.Amount), "")
		} else {
			rec = append(rec, "", "", "", "")
		}

		if i < len(st.ATMWithdrawals) {
			w := st.ATMWithdrawals[i]
			rec = append(rec, w.Description, w.TranDate, w.DatePosted, money.Format(w.Amount.Abs()), "")
		} else {
			rec = append(rec, "", "", "", "", "")
		}

		if i < len(st.ChecksPaid) {
			c := st.ChecksPaid[i]
			rec = append(rec, c.DatePaid, c.CheckNumber, money.Format(c.Amount), c.ReferenceNumber, "")
		} else {
			rec = append(rec, "", "", "", "", "")
		}

		if i < len(st.CardPurchases) {
			p := st.CardPurchases[i]
			rec = append(rec, p.Description, p.TranDate, p.DatePosted, money.Format(p.Amount.Abs()))
		} else {
			rec = append(rec, "", "", "", "")
		}

		records = append(records, rec)
	}
	return records
}

package writer

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/insightdelivered/statement-converter/internal/models"
)

// Combine merges every category into one list sorted by date. Checks are
// described as "Check #<number>" and their amount is negated, since they
// are money leaving the account like the other debits.
//
// Transaction dates carry no year. When the statement date is known each
// MM-DD is placed in the statement's year, or the year before when its
// month falls after the statement month, so a January statement lists
// December rows first. Without a statement date rows are ordered by the
// MM-DD text. The sort is stable: rows on the same day keep category order.
func Combine(st *models.Statement) []models.CombinedTransaction {
	rows := make([]models.CombinedTransaction, 0, st.TransactionCount())

	for _, d := range st.Deposits {
		rows = append(rows, models.CombinedTransaction{
			Date:        d.DateCredited,
			Type:        models.TypeDeposit,
			Description: d.Description,
			Amount:      d.Amount,
		})
	}
	for _, w := range st.ATMWithdrawals {
		rows = append(rows, models.CombinedTransaction{
			Date:        w.TranDate,
			Type:        models.TypeATMWithdrawal,
			Description: w.Description,
			Amount:      w.Amount,
		})
	}
	for _, c := range st.ChecksPaid {
		rows = append(rows, models.CombinedTransaction{
			Date:        c.DatePaid,
			Type:        models.TypeCheck,
			Description: "Check #" + c.CheckNumber,
			Amount:      c.Amount.Neg(),
		})
	}
	for _, p := range st.CardPurchases {
		rows = append(rows, models.CombinedTransaction{
			Date:        p.TranDate,
			Type:        models.TypeCardPurchase,
			Description: p.Description,
			Amount:      p.Amount,
		})
	}

	stmt, hasDate := st.AccountInfo.StatementTime()
	keys := make([]string, len(rows))
	for i, r := range rows {
		keys[i] = r.Date
		if hasDate {
			keys[i] = dateKey(r.Date, stmt)
		}
	}
	sort.Stable(byKey{rows: rows, keys: keys})

	return rows
}

// dateKey resolves an MM-DD date against the statement date into a
// sortable "YYYY-MM-DD" string.
func dateKey(mmdd string, stmt time.Time) string {
	if len(mmdd) < 2 {
		return mmdd
	}
	month, err := strconv.Atoi(mmdd[:2])
	if err != nil {
		return mmdd
	}
	year := stmt.Year()
	if month > int(stmt.Month()) {
		year--
	}
	return fmt.Sprintf("%04d-%s", year, mmdd)
}

type byKey struct {
	rows []models.CombinedTransaction
	keys []string
}

func (b byKey) Len() int           { return len(b.rows) }
func (b byKey) Less(i, j int) bool { return b.keys[i] < b.keys[j] }
func (b byKey) Swap(i, j int) {
	b.rows[i], b.rows[j] = b.rows[j], b.rows[i]
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
}

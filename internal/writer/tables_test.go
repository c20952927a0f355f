package writer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-converter/internal/models"
	"github.com/insightdelivered/statement-converter/internal/money"
)

func amountPtr(s string) *money.Amount {
	a := money.MustParse(s)
	return &a
}

// sampleStatement mirrors a statement with one row in three categories.
func sampleStatement() *models.Statement {
	st := &models.Statement{
		AccountInfo: models.AccountInfo{
			AccountNumber:    "000009752",
			StatementDate:    "June 5, 2003",
			BeginningBalance: amountPtr("7126.11"),
			EndingBalance:    amountPtr("10521.19"),
		},
		Deposits: []models.Deposit{
			{DateCredited: "05-15", Description: "Deposit Ref Nbr: 130012345", Amount: money.MustParse("3615.08")},
		},
		ATMWithdrawals: []models.ATMWithdrawal{
			{TranDate: "05-18", DatePosted: "05-19", Description: "ATM Withdrawal 1000 Walnut St", Amount: money.MustParse("-20.00")},
		},
		ChecksPaid: []models.CheckPaid{
			{DatePaid: "05-12", CheckNumber: "1001", Amount: money.MustParse("75.00"), ReferenceNumber: "00012576589"},
		},
	}
	st.Normalize()
	return st
}

func tableNames(tables []Table) []string {
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = t.Name
	}
	return names
}

func TestTables_Order(t *testing.T) {
	tables := Tables(sampleStatement())
	assert.Equal(t, []string{
		TableSummary,
		TableDeposits,
		TableATMWithdrawals,
		TableChecksPaid,
		TableAllTransactions,
	}, tableNames(tables))

	summary := tables[0]
	assert.Equal(t, []string{"Field", "Value"}, summary.Header)
	assert.Equal(t, []string{"Account Number", "000009752"}, summary.Rows[0])
	assert.Equal(t, []string{"Statement Date", "June 5, 2003"}, summary.Rows[1])
	assert.Equal(t, []string{"Beginning Balance", "$7,126.11"}, summary.Rows[2])
	assert.Equal(t, []string{"Ending Balance", "$10,521.19"}, summary.Rows[3])
	assert.Equal(t, []string{"Total Checks Paid", "1"}, summary.Rows[8])
	assert.Equal(t, []string{"Total Card Purchases", "0"}, summary.Rows[9])

	atm := tables[2]
	assert.Equal(t, []string{"Transaction Date", "Date Posted", "Description", "Amount"}, atm.Header)
	assert.Equal(t, [][]string{{"05-18", "05-19", "ATM Withdrawal 1000 Walnut St", "-$20.00"}}, atm.Rows)

	checks := tables[3]
	assert.Equal(t, [][]string{{"05-12", "1001", "$75.00", "00012576589"}}, checks.Rows)
}

func TestTables_OmitsEmptyCategories(t *testing.T) {
	st := sampleStatement()
	st.ChecksPaid = []models.CheckPaid{}

	names := tableNames(Tables(st))
	assert.NotContains(t, names, TableChecksPaid)
	assert.NotContains(t, names, TableCardPurchases)
	assert.Contains(t, names, TableAllTransactions)
}

func TestTables_EmptyRecord(t *testing.T) {
	tables := Tables(&models.Statement{})
	require.Len(t, tables, 1)

	summary := tables[0]
	assert.Equal(t, TableSummary, summary.Name)
	assert.Equal(t, []string{"Account Number", "N/A"}, summary.Rows[0])
	assert.Equal(t, []string{"Statement Date", "N/A"}, summary.Rows[1])
	assert.Equal(t, []string{"Beginning Balance", "$0.00"}, summary.Rows[2])
	assert.Equal(t, []string{"Ending Balance", "$0.00"}, summary.Rows[3])
}

func TestTables_DoesNotModifyStatement(t *testing.T) {
	st := sampleStatement()
	before := *st
	_ = Tables(st)
	assert.Equal(t, before, *st)
	assert.Equal(t, "75.00", st.ChecksPaid[0].Amount.String())
}

package writer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-converter/internal/models"
	"github.com/insightdelivered/statement-converter/internal/money"
)

func TestCombine_SampleStatement(t *testing.T) {
	rows := Combine(sampleStatement())
	require.Len(t, rows, 3)

	// Sorted by date: check 05-12, deposit 05-15, ATM 05-18.
	assert.Equal(t, "05-12", rows[0].Date)
	assert.Equal(t, models.TypeCheck, rows[0].Type)
	assert.Equal(t, "Check #1001", rows[0].Description)
	assert.Equal(t, "-75.00", rows[0].Amount.String())

	assert.Equal(t, models.TypeDeposit, rows[1].Type)
	assert.Equal(t, "3615.08", rows[1].Amount.String())

	assert.Equal(t, models.TypeATMWithdrawal, rows[2].Type)
	assert.Equal(t, "-20.00", rows[2].Amount.String())
}

func TestCombine_AllTransactionsTable(t *testing.T) {
	tables := Tables(sampleStatement())
	all := tables[len(tables)-1]
	require.Equal(t, TableAllTransactions, all.Name)
	require.Len(t, all.Rows, 3)
	assert.Equal(t, []string{"05-12", "Check", "Check #1001", "-$75.00"}, all.Rows[0])
}

func TestCombine_CrossesYearBoundary(t *testing.T) {
	st := &models.Statement{
		AccountInfo: models.AccountInfo{AccountNumber: "1", StatementDate: "January 5, 2024"},
		Deposits: []models.Deposit{
			{DateCredited: "01-03", Description: "Deposit Ref 1111", Amount: money.MustParse("10.00")},
			{DateCredited: "12-28", Description: "Deposit Ref 2222", Amount: money.MustParse("20.00")},
		},
	}

	rows := Combine(st)
	require.Len(t, rows, 2)
	assert.Equal(t, "12-28", rows[0].Date)
	assert.Equal(t, "01-03", rows[1].Date)
}

func TestCombine_NoStatementDateSortsByText(t *testing.T) {
	st := &models.Statement{
		AccountInfo: models.AccountInfo{AccountNumber: "1"},
		Deposits: []models.Deposit{
			{DateCredited: "12-28", Amount: money.MustParse("20.00")},
			{DateCredited: "01-03", Amount: money.MustParse("10.00")},
		},
	}

	rows := Combine(st)
	require.Len(t, rows, 2)
	assert.Equal(t, "01-03", rows[0].Date)
	assert.Equal(t, "12-28", rows[1].Date)
}

func TestCombine_StableWithinSameDay(t *testing.T) {
	st := &models.Statement{
		AccountInfo: models.AccountInfo{AccountNumber: "1", StatementDate: "June 5, 2003"},
		Deposits:    []models.Deposit{{DateCredited: "05-20", Description: "first", Amount: money.MustParse("1.00")}},
		CardPurchases: []models.CardPurchase{
			{TranDate: "05-20", DatePosted: "05-21", Description: "second", Amount: money.MustParse("-2.00")},
			{TranDate: "05-20", DatePosted: "05-21", Description: "third", Amount: money.MustParse("-3.00")},
		},
	}

	rows := Combine(st)
	require.Len(t, rows, 3)
	assert.Equal(t, "first", rows[0].Description)
	assert.Equal(t, "second", rows[1].Description)
	assert.Equal(t, "third", rows[2].Description)
}

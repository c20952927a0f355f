package writer

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-converter/internal/models"
	"github.com/insightdelivered/statement-converter/internal/money"
)

func TestCSVWriter_Sections(t *testing.T) {
	st := &models.Statement{
		AccountInfo: models.AccountInfo{AccountNumber: "42", BeginningBalance: amountPtr("1000.00")},
		CardPurchases: []models.CardPurchase{
			{TranDate: "05-20", DatePosted: "05-21", Description: "GROCERY STORE", Amount: money.MustParse("-45.67")},
		},
	}

	var buf bytes.Buffer
	w := &CSVWriter{}
	require.NoError(t, w.Write(&buf, st))

	want := strings.Join([]string{
		"Account Summary",
		"Field,Value",
		"Account Number,42",
		"Statement Date,N/A",
		`Beginning Balance,"$1,000.00"`,
		"Ending Balance,$0.00",
		",",
		"Transaction Summary,",
		"Total Deposits,0",
		"Total ATM Withdrawals,0",
		"Total Checks Paid,0",
		"Total Card Purchases,1",
		"",
		"Card Purchases",
		"Transaction Date,Date Posted,Description,Amount",
		"05-20,05-21,GROCERY STORE,-$45.67",
		"",
		"All Transactions",
		"Date,Type,Description,Amount",
		"05-20,Card Purchase,GROCERY STORE,-$45.67",
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestCSVWriter_SideBySide(t *testing.T) {
	st := sampleStatement()
	st.ATMWithdrawals = append(st.ATMWithdrawals,
		models.ATMWithdrawal{TranDate: "05-20", DatePosted: "05-21", Description: "ATM 2", Amount: money.MustParse("-40.00")},
		models.ATMWithdrawal{TranDate: "05-22", DatePosted: "05-23", Description: "ATM 3", Amount: money.MustParse("-60.00")},
		models.ATMWithdrawal{TranDate: "05-24", DatePosted: "05-25", Description: "ATM 4", Amount: money.MustParse("-80.00")},
	)

	var buf bytes.Buffer
	w := &CSVWriter{Layout: LayoutSideBySide}
	require.NoError(t, w.Write(&buf, st))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	// header, sub-header, then max(3 summary rows, 4 ATM rows)
	require.Len(t, records, 6)

	for _, rec := range records {
		assert.Len(t, rec, len(sideBySideHeader))
	}
	assert.Equal(t, "Account Number", records[1][0])
	assert.Equal(t, "000009752", records[1][1])
	assert.Equal(t, "ATM WITHDRAWALS & DEBITS", records[1][7])

	first := records[2]
	assert.Equal(t, "Statement Date", first[0])
	assert.Equal(t, "Deposit Ref Nbr: 130012345", first[3])
	assert.Equal(t, "$3,615.08", first[5])
	assert.Equal(t, "$20.00", first[10])
	assert.Equal(t, "1001", first[13])

	assert.Equal(t, "Beginning Balance", records[3][0])
	assert.Equal(t, "$7,126.11", records[3][1])
	assert.Equal(t, "", records[5][0])
	assert.Equal(t, "ATM 4", records[5][7])
	assert.Equal(t, "$80.00", records[5][10])
}

func TestCSVWriter_SideBySideMissingStatementDate(t *testing.T) {
	st := sampleStatement()
	st.AccountInfo.StatementDate = ""

	var buf bytes.Buffer
	w := &CSVWriter{Layout: LayoutSideBySide}
	require.NoError(t, w.Write(&buf, st))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "Statement Date", records[2][0])
	assert.Equal(t, "N/A", records[2][1])
}

func TestCSVWriter_UnknownLayout(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{Layout: "pivot"}
	assert.Error(t, w.Write(&buf, sampleStatement()))
}

func TestParseLayout(t *testing.T) {
	tests := []struct {
		input   string
		want    Layout
		wantErr bool
	}{
		{"", LayoutSections, false},
		{"sections", LayoutSections, false},
		{"Side-By-Side", LayoutSideBySide, false},
		{"pivot", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLayout(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

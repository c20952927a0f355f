package models

import (
	"strings"
	"time"

	"github.com/insightdelivered/statement-converter/internal/money"
)

// Statement is the structured record produced from one statement's text.
// It is built once by the parser and only read afterwards.
type Statement struct {
	AccountInfo    AccountInfo     `json:"accountInfo"`
	Deposits       []Deposit       `json:"deposits"`
	ATMWithdrawals []ATMWithdrawal `json:"atmWithdrawals"`
	ChecksPaid     []CheckPaid     `json:"checksPaid"`
	CardPurchases  []CardPurchase  `json:"visaPurchases"`
}

// AccountInfo holds metadata extracted from the statement header.
// Balances are nil when the statement text does not carry them.
type AccountInfo struct {
	AccountNumber    string        `json:"accountNumber,omitempty"`
	StatementDate    string        `json:"statementDate,omitempty"`
	BeginningBalance *money.Amount `json:"beginningBalance"`
	EndingBalance    *money.Amount `json:"endingBalance"`
}

// Deposit is a row of the "Deposits & Other Credits" section.
// Amount is never negative.
type Deposit struct {
	DateCredited string       `json:"dateCredited"` // MM-DD
	Description  string       `json:"description"`
	Amount       money.Amount `json:"amount"`
}

// ATMWithdrawal is a row of the "ATM Withdrawals & Debits" section.
// Amount is always negative.
type ATMWithdrawal struct {
	TranDate    string       `json:"tranDate"`   // MM-DD
	DatePosted  string       `json:"datePosted"` // MM-DD
	Description string       `json:"description"`
	Amount      money.Amount `json:"amount"`
}

// CheckPaid is a row of the "Checks Paid" section.
// Amount is never negative.
type CheckPaid struct {
	DatePaid        string       `json:"datePaid"` // MM-DD
	CheckNumber     string       `json:"checkNumber"`
	Amount          money.Amount `json:"amount"`
	ReferenceNumber string       `json:"referenceNumber"`
}

// CardPurchase is a row of the "VISA/Check Card Purchases" section.
// Amount is always negative.
type CardPurchase struct {
	TranDate    string       `json:"tranDate"`   // MM-DD
	DatePosted  string       `json:"datePosted"` // MM-DD
	Description string       `json:"description"`
	Amount      money.Amount `json:"amount"`
}

// TransactionCount returns the number of rows across all categories.
func (s *Statement) TransactionCount() int {
	return len(s.Deposits) + len(s.ATMWithdrawals) + len(s.ChecksPaid) + len(s.CardPurchases)
}

// IsEmpty reports whether the statement has no transactions at all.
func (s *Statement) IsEmpty() bool {
	return s.TransactionCount() == 0
}

// Normalize replaces nil category slices with empty ones so the record
// marshals as [] rather than null.
func (s *Statement) Normalize() {
	if s.Deposits == nil {
		s.Deposits = []Deposit{}
	}
	if s.ATMWithdrawals == nil {
		s.ATMWithdrawals = []ATMWithdrawal{}
	}
	if s.ChecksPaid == nil {
		s.ChecksPaid = []CheckPaid{}
	}
	if s.CardPurchases == nil {
		s.CardPurchases = []CardPurchase{}
	}
}

// statementDateLayouts are the long-form dates printed on statements,
// e.g. "June 5, 2003" or "Jun 5 2003".
var statementDateLayouts = []string{
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"Jan. 2, 2006",
}

// StatementTime parses StatementDate. ok is false when the date is absent
// or not in a recognized long form.
func (a AccountInfo) StatementTime() (t time.Time, ok bool) {
	s := strings.Join(strings.Fields(a.StatementDate), " ")
	if s == "" {
		return time.Time{}, false
	}
	if strings.HasPrefix(strings.ToLower(s), "sept") {
		s = "Sep" + s[4:]
	}
	for _, layout := range statementDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

package models

import "github.com/insightdelivered/statement-converter/internal/money"

// TransactionType labels a row of the combined transaction view.
type TransactionType string

const (
	TypeDeposit       TransactionType = "Deposit"
	TypeATMWithdrawal TransactionType = "ATM Withdrawal"
	TypeCheck         TransactionType = "Check"
	TypeCardPurchase  TransactionType = "Card Purchase"
)

// CombinedTransaction is one row of the "All Transactions" view. Amounts
// follow the account perspective: money leaving the account is negative.
type CombinedTransaction struct {
	Date        string          `json:"date"` // MM-DD
	Type        TransactionType `json:"type"`
	Description string          `json:"description"`
	Amount      money.Amount    `json:"amount"`
}

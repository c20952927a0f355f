// Package parser turns the extracted text of a checking account statement
// into a models.Statement.
package parser

import (
	"regexp"

	"github.com/insightdelivered/statement-converter/internal/models"
)

// Parse extracts account information and the four transaction categories
// from text, the newline-joined pages of one statement. It fails with a
// *ParseError of kind MissingAccountNumber when no account number is found.
func Parse(text string) (*models.Statement, error) {
	st, _, err := ParseWithReport(text)
	return st, err
}

// ParseWithReport is Parse plus a Report of the sections found and the
// matches that were skipped.
func ParseWithReport(text string) (*models.Statement, *Report, error) {
	report := &Report{}

	info := parseAccountInfo(text, report)
	if info.AccountNumber == "" {
		return nil, nil, ErrMissingAccountNumber
	}

	st := &models.Statement{AccountInfo: info}
	runs := splitSections(text)
	for _, s := range sectionOrder {
		if len(runs[s]) > 0 {
			report.Sections = append(report.Sections, s)
		}
	}

	st.Deposits = applyRule(DepositRule, runs, report)
	st.ATMWithdrawals = applyRule(ATMWithdrawalRule, runs, report)
	st.ChecksPaid = applyRule(CheckRule, runs, report)
	st.CardPurchases = applyRule(CardPurchaseRule, runs, report)
	st.Normalize()

	return st, report, nil
}

func applyRule[T any](r Rule[T], runs map[Section][]sectionRun, report *Report) []T {
	var rows []T
	for _, run := range runs[r.Section] {
		rows = append(rows, r.extract(run, report)...)
	}
	return rows
}

var accountMarker = regexp.MustCompile(`(?i)\baccount\b`)

// Detect reports whether text looks like a supported statement layout: it
// names an account or carries at least one known section header.
func Detect(text string) bool {
	return accountMarker.MatchString(text) || hasHeader(text)
}

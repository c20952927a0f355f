package parser

import (
	"regexp"
	"strings"
)

// Token patterns shared by the account and section rules.
const (
	// monthName matches full and abbreviated English month names.
	monthName = `(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|June?|July?|Aug(?:ust)?|Sep(?:t(?:ember)?)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)\.?`
	// longDate matches "June 5, 2003".
	longDate = monthName + `\s+\d{1,2},?\s+\d{4}`
	// shortDate matches the two-field "MM-DD" transaction date.
	shortDate = `\b\d{2}-\d{2}`
	// amountToken is loose on purpose: money.Parse applies the strict grammar
	// and rejected tokens end up in the Report.
	amountToken = `-?\$?-?\d[\d,]*\.\d+`
)

var (
	// "Account # 000009752", "Account Number: 000-009-752",
	// "Primary Checking Account #000009752"
	accountNumberPattern = regexp.MustCompile(`(?i)\baccount\s*(?:number|no\.?|nbr\.?)?\s*#?\s*:?\s*(\d+(?:-\d+)*)\b`)

	statementDateLabeled = regexp.MustCompile(`(?i)statement\s+date\s*:?\s*(` + longDate + `)`)
	statementDateAny     = regexp.MustCompile(`(?i)\b(` + longDate + `)`)

	// "Beginning Balance $7,126.11", "Beginning Balance on June 5, 2003 $7,126.11"
	beginningBalancePattern = regexp.MustCompile(`(?i)(?:beginning|opening|starting|previous)\s+balance(?:\s+on\s+` + longDate + `)?\s*:?\s*(` + amountToken + `)`)
	endingBalancePattern    = regexp.MustCompile(`(?i)(?:ending|closing|new)\s+balance(?:\s+on\s+` + longDate + `)?\s*:?\s*(` + amountToken + `)`)
)

// firstSubmatch returns the first capture group of re in text, or "".
func firstSubmatch(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// collapseSpace trims s and folds internal whitespace runs to one space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

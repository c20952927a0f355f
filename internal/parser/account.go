package parser

import (
	"regexp"
	"strings"

	"github.com/insightdelivered/statement-converter/internal/models"
	"github.com/insightdelivered/statement-converter/internal/money"
)

// parseAccountInfo searches the whole text for each header field
// independently. Fields that are not found stay empty/nil.
func parseAccountInfo(text string, report *Report) models.AccountInfo {
	info := models.AccountInfo{
		AccountNumber: strings.ReplaceAll(firstSubmatch(accountNumberPattern, text), "-", ""),
	}

	if d := firstSubmatch(statementDateLabeled, text); d != "" {
		info.StatementDate = collapseSpace(d)
	} else if d := firstSubmatch(statementDateAny, text); d != "" {
		info.StatementDate = collapseSpace(d)
	}

	info.BeginningBalance = findBalance(beginningBalancePattern, "beginningBalance", text, report)
	info.EndingBalance = findBalance(endingBalancePattern, "endingBalance", text, report)

	return info
}

func findBalance(re *regexp.Regexp, field, text string, report *Report) *money.Amount {
	loc := re.FindStringSubmatchIndex(text)
	if loc == nil {
		return nil
	}
	token := text[loc[2]:loc[3]]
	a, err := money.Parse(token)
	if err != nil {
		report.skip(field, MalformedAmountToken, token, loc[2])
		return nil
	}
	return &a
}

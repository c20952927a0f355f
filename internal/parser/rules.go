package parser

import (
	"regexp"
	"sort"
	"strings"

	"github.com/insightdelivered/statement-converter/internal/models"
	"github.com/insightdelivered/statement-converter/internal/money"
)

// Rule extracts the rows of one transaction category from a section's text.
// Each pattern describes one source layout and reports its fields through
// named capture groups; matches from all patterns are merged in text order
// and a match overlapping an earlier one is ignored.
type Rule[T any] struct {
	Name     string
	Section  Section
	Patterns []*regexp.Regexp
	build    func(fields map[string]string) (T, error)
}

// WithPattern returns a copy of r that also accepts the layout described by re.
func (r Rule[T]) WithPattern(re *regexp.Regexp) Rule[T] {
	patterns := make([]*regexp.Regexp, 0, len(r.Patterns)+1)
	patterns = append(patterns, r.Patterns...)
	r.Patterns = append(patterns, re)
	return r
}

// Extract returns the rows found in section, in source order. Lines that no
// pattern matches are ignored, as are matches with a malformed amount.
func (r Rule[T]) Extract(section string) []T {
	return r.extract(sectionRun{text: section}, nil)
}

type ruleMatch struct {
	start, end int
	fields     map[string]string
}

func (r Rule[T]) extract(run sectionRun, report *Report) []T {
	var matches []ruleMatch
	for _, re := range r.Patterns {
		names := re.SubexpNames()
		for _, loc := range re.FindAllStringSubmatchIndex(run.text, -1) {
			m := ruleMatch{start: loc[0], end: loc[1], fields: make(map[string]string, len(names))}
			for i, name := range names {
				if name == "" || loc[2*i] < 0 {
					continue
				}
				m.fields[name] = run.text[loc[2*i]:loc[2*i+1]]
			}
			matches = append(matches, m)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].start < matches[j].start
	})

	var rows []T
	lastEnd := -1
	for _, m := range matches {
		if m.start < lastEnd {
			continue
		}
		lastEnd = m.end

		row, err := r.build(m.fields)
		if err != nil {
			matched := run.text[m.start:m.end]
			lead := len(matched) - len(strings.TrimLeft(matched, " \t\r\n"))
			report.skip(r.Name, MalformedAmountToken, collapseSpace(matched), run.offset+m.start+lead)
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// DepositRule matches "Deposit Ref Nbr: 130012345 05-15 $3,615.08" and the
// date-first layout "05-15 Deposit Ref Nbr: 130012345 $3,615.08".
var DepositRule = Rule[models.Deposit]{
	Name:    "deposit",
	Section: SectionDeposits,
	Patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?P<desc>\bdeposit\b[^\d$\n]{0,40}?\d{4,})\s+(?P<date>\d{2}-\d{2})\s+(?P<amount>` + amountToken + `)`),
		regexp.MustCompile(`(?i)(?P<date>` + shortDate + `)\s+(?P<desc>deposit\b[^\d$\n]{0,40}?\d{4,})\s+(?P<amount>` + amountToken + `)`),
	},
	build: func(f map[string]string) (models.Deposit, error) {
		amount, err := money.Parse(f["amount"])
		if err != nil {
			return models.Deposit{}, err
		}
		return models.Deposit{
			DateCredited: f["date"],
			Description:  collapseSpace(f["desc"]),
			Amount:       amount.Abs(),
		}, nil
	},
}

// debitLinePattern is the two-date layout shared by ATM withdrawals and card
// purchases on a line of its own: "05-18 05-19 ATM Withdrawal 1000 Walnut St
// -$20.00". The amount is the last token of the line, so numbers inside the
// description stay in the description.
var debitLinePattern = regexp.MustCompile(`(?m)\n[ \t]*(?P<tran>` + shortDate + `)[ \t]+(?P<posted>\d{2}-\d{2})[ \t]+(?P<desc>\S[^\n]*?)[ \t]+(?P<amount>` + amountToken + `)[ \t]*\r?$`)

// debitPattern is the same layout for text without line breaks. The first
// amount token after the dates ends the row.
var debitPattern = regexp.MustCompile(`(?P<tran>` + shortDate + `)\s+(?P<posted>\d{2}-\d{2})\s+(?P<desc>\S.*?)\s+(?P<amount>` + amountToken + `)(?:\s|$)`)

// ATMWithdrawalRule matches rows of the ATM section. Amounts are always
// recorded as negative.
var ATMWithdrawalRule = Rule[models.ATMWithdrawal]{
	Name:     "atmWithdrawal",
	Section:  SectionATMWithdrawals,
	Patterns: []*regexp.Regexp{debitLinePattern, debitPattern},
	build: func(f map[string]string) (models.ATMWithdrawal, error) {
		amount, err := money.Parse(f["amount"])
		if err != nil {
			return models.ATMWithdrawal{}, err
		}
		return models.ATMWithdrawal{
			TranDate:    f["tran"],
			DatePosted:  f["posted"],
			Description: collapseSpace(f["desc"]),
			Amount:      amount.Debit(),
		}, nil
	},
}

// CardPurchaseRule matches rows of the VISA/check card section. Amounts are
// always recorded as negative.
var CardPurchaseRule = Rule[models.CardPurchase]{
	Name:     "cardPurchase",
	Section:  SectionCardPurchases,
	Patterns: []*regexp.Regexp{debitLinePattern, debitPattern},
	build: func(f map[string]string) (models.CardPurchase, error) {
		amount, err := money.Parse(f["amount"])
		if err != nil {
			return models.CardPurchase{}, err
		}
		return models.CardPurchase{
			TranDate:    f["tran"],
			DatePosted:  f["posted"],
			Description: collapseSpace(f["desc"]),
			Amount:      amount.Debit(),
		}, nil
	},
}

// CheckRule matches "05-12 1001 75.00 00012576589". A trailing "*" on the
// check number marks a break in the sequence and is dropped.
var CheckRule = Rule[models.CheckPaid]{
	Name:    "check",
	Section: SectionChecksPaid,
	Patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?P<date>` + shortDate + `)\s+(?P<number>\d+)\*?\s+(?P<amount>` + amountToken + `)\s+(?P<ref>\d+)\b`),
	},
	build: func(f map[string]string) (models.CheckPaid, error) {
		amount, err := money.Parse(f["amount"])
		if err != nil {
			return models.CheckPaid{}, err
		}
		return models.CheckPaid{
			DatePaid:        f["date"],
			CheckNumber:     f["number"],
			Amount:          amount.Abs(),
			ReferenceNumber: f["ref"],
		}, nil
	},
}

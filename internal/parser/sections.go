package parser

import (
	"regexp"
	"sort"
)

// Section identifies a transaction category block of a statement.
type Section string

const (
	SectionDeposits       Section = "deposits"
	SectionATMWithdrawals Section = "atmWithdrawals"
	SectionChecksPaid     Section = "checksPaid"
	SectionCardPurchases  Section = "visaPurchases"
)

// sectionOrder is the order categories appear in a Statement.
var sectionOrder = []Section{
	SectionDeposits,
	SectionATMWithdrawals,
	SectionChecksPaid,
	SectionCardPurchases,
}

// sectionHeaders recognize the category headings. Whitespace between words
// is optional and "&", "and" or "/" may join them. Plural forms are required
// since the singular phrases show up in row descriptions
// ("CHECK CARD PURCHASE ...", "ATM WITHDRAWAL DEBIT ...").
var sectionHeaders = map[Section]*regexp.Regexp{
	SectionDeposits:       regexp.MustCompile(`(?i)\bdeposits\s*(?:&|and)?\s*(?:other\s*)?credits?\b`),
	SectionATMWithdrawals: regexp.MustCompile(`(?i)\batm\s*withdrawals\b(?:\s*(?:&|and|/)?\s*(?:other\s*)?debits\b)?`),
	SectionChecksPaid:     regexp.MustCompile(`(?i)\bchecks\s*paid\b`),
	SectionCardPurchases:  regexp.MustCompile(`(?i)\bvisa\s*/?\s*check\s*card\s*purchases?\b|\b(?:check\s*)?card\s*purchases\b`),
}

type headerHit struct {
	section    Section
	start, end int
}

// findHeaders returns every header occurrence ordered by position.
func findHeaders(text string) []headerHit {
	var hits []headerHit
	for _, s := range sectionOrder {
		for _, loc := range sectionHeaders[s].FindAllStringIndex(text, -1) {
			hits = append(hits, headerHit{section: s, start: loc[0], end: loc[1]})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].start < hits[j].start
	})

	// Drop hits nested in an earlier, longer header.
	out := hits[:0]
	lastEnd := -1
	for _, h := range hits {
		if h.start < lastEnd {
			continue
		}
		out = append(out, h)
		lastEnd = h.end
	}
	return out
}

// sectionRun is one stretch of section text and its byte offset in the
// document.
type sectionRun struct {
	text   string
	offset int
}

// splitSections returns the text following each header up to the next
// recognized header or the end of the text. Repeated headers, e.g. on
// continuation pages, give several runs in source order.
func splitSections(text string) map[Section][]sectionRun {
	hits := findHeaders(text)
	runs := make(map[Section][]sectionRun)
	for i, h := range hits {
		end := len(text)
		if i+1 < len(hits) {
			end = hits[i+1].start
		}
		runs[h.section] = append(runs[h.section], sectionRun{text: text[h.end:end], offset: h.end})
	}
	return runs
}

// hasHeader reports whether any category header occurs in text.
func hasHeader(text string) bool {
	for _, s := range sectionOrder {
		if sectionHeaders[s].MatchString(text) {
			return true
		}
	}
	return false
}

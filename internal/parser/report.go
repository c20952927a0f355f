package parser

// Skip records a matched row that was dropped.
type Skip struct {
	Rule   string    `json:"rule"`
	Kind   ErrorKind `json:"kind"`
	Text   string    `json:"text"`
	Offset int       `json:"offset"` // byte offset in the document text
}

// Report describes what the parser did with a document beyond the record
// itself. It is returned by ParseWithReport.
type Report struct {
	Sections []Section `json:"sections"`
	Skipped  []Skip    `json:"skipped,omitempty"`
}

func (r *Report) skip(rule string, kind ErrorKind, text string, offset int) {
	if r == nil {
		return
	}
	r.Skipped = append(r.Skipped, Skip{Rule: rule, Kind: kind, Text: text, Offset: offset})
}

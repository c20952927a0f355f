package parser

import "fmt"

// ErrorKind classifies parse problems.
type ErrorKind string

const (
	// MissingAccountNumber is fatal for a document: the text does not look
	// like a supported statement.
	MissingAccountNumber ErrorKind = "MissingAccountNumber"
	// MalformedAmountToken is local to one matched row; the row is skipped
	// and only shows up in a Report.
	MalformedAmountToken ErrorKind = "MalformedAmountToken"
)

// ParseError is the typed failure returned by Parse.
type ParseError struct {
	Kind ErrorKind
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Msg == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Is matches any *ParseError of the same kind, so callers can write
// errors.Is(err, parser.ErrMissingAccountNumber).
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == e.Kind
}

// ErrMissingAccountNumber is returned when no account number is found.
var ErrMissingAccountNumber = &ParseError{
	Kind: MissingAccountNumber,
	Msg:  "no account number found in statement text",
}

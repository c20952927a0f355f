// Package writer renders a parsed statement as a workbook or as delimited
// text. Output depends only on the statement, so the same record always
// yields the same bytes.
package writer

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/insightdelivered/statement-converter/internal/models"
)

// Target is an output surface.
type Target string

const (
	TargetTableSet      Target = "table-set"
	TargetDelimitedText Target = "delimited-text"
)

// ErrUnsupportedTarget is returned for an unknown target or format name.
var ErrUnsupportedTarget = errors.New("unsupported output target")

// ParseTarget accepts the target names and their file format aliases
// ("xlsx", "csv").
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "table-set", "xlsx", "excel":
		return TargetTableSet, nil
	case "delimited-text", "csv":
		return TargetDelimitedText, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedTarget, s)
	}
}

// Extension returns the file extension for the target, without the dot.
func (t Target) Extension() string {
	switch t {
	case TargetTableSet:
		return "xlsx"
	case TargetDelimitedText:
		return "csv"
	default:
		return ""
	}
}

// ContentType returns the MIME type used when serving the target.
func (t Target) ContentType() string {
	switch t {
	case TargetTableSet:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case TargetDelimitedText:
		return "text/csv; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

// Options tune serialization. The zero value is the default output.
type Options struct {
	Layout Layout
}

// Serialize renders st for the given target with default options.
func Serialize(st *models.Statement, target Target) ([]byte, error) {
	return SerializeWithOptions(st, target, Options{})
}

// SerializeWithOptions renders st for the given target.
func SerializeWithOptions(st *models.Statement, target Target, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch target {
	case TargetTableSet:
		err = (&XLSXWriter{}).Write(&buf, st)
	case TargetDelimitedText:
		err = (&CSVWriter{Layout: opts.Layout}).Write(&buf, st)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedTarget, target)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

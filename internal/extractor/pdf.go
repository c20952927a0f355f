// Package extractor pulls the text layer out of PDF statements.
package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

var (
	// ErrNotPDF is returned when the input does not start with a PDF header.
	ErrNotPDF = errors.New("input is not a PDF document")
	// ErrNoText is returned when no readable text layer could be found,
	// typically for scanned or image-only statements.
	ErrNoText = errors.New("no readable text could be extracted from PDF; the file may be image-based or scanned")
)

var pdfMagic = []byte("%PDF-")

// IsPDF reports whether data starts with the PDF file signature, allowing
// for leading whitespace some generators emit.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n\x00"), pdfMagic)
}

// ExtractFile reads the PDF at path and returns the text of each page.
func ExtractFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %q: %w", path, err)
	}
	return ExtractPages(f, info.Size())
}

// ExtractBytes returns the text of each page of an in-memory PDF.
func ExtractBytes(data []byte) ([]string, error) {
	if !IsPDF(data) {
		return nil, ErrNotPDF
	}
	return ExtractPages(bytes.NewReader(data), int64(len(data)))
}

// ExtractPages returns the text of each page. Several extraction methods
// are tried in turn and the first one producing readable text wins.
func ExtractPages(r io.ReaderAt, size int64) (pages []string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			pages = nil
			err = fmt.Errorf("PDF library crashed: %v", rec)
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF: %w", err)
	}

	numPages := reader.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	// Row-based extraction keeps the statement's line layout best.
	if pages = extractByRow(reader, numPages); IsReadableText(pages) {
		return pages, nil
	}
	if pages = extractByContent(reader, numPages); IsReadableText(pages) {
		return pages, nil
	}
	if pages = extractByPagePlainText(reader, numPages); IsReadableText(pages) {
		return pages, nil
	}
	if text := extractByReaderPlainText(reader); IsReadableText([]string{text}) {
		return []string{text}, nil
	}

	return nil, ErrNoText
}

// JoinPages flattens pages into the single newline-joined text the parser
// consumes.
func JoinPages(pages []string) string {
	return strings.Join(pages, "\n")
}

// IsReadableText reports whether pages hold more than 50 characters of
// text, more than 60% of it plain ASCII, with at least one word found on
// every checking account statement.
func IsReadableText(pages []string) bool {
	if totalTextLen(pages) <= 50 {
		return false
	}
	if textQuality(pages) <= 0.6 {
		return false
	}
	return containsCommonWords(pages)
}

// textQuality returns the share of characters that are ASCII letters,
// digits, whitespace or common punctuation. unicode.IsLetter is too broad:
// identity-encoded fonts decode to accented garbage.
func textQuality(pages []string) float64 {
	total := 0
	readable := 0
	for _, page := range pages {
		for _, r := range page {
			total++
			if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r)) {
				readable++
				continue
			}
			if strings.ContainsRune(".,-/:;()'\"$%&@#!?+=*", r) {
				readable++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

var commonWords = []string{
	"account", "balance", "statement", "deposit", "withdrawal", "check",
	"credit", "debit", "paid", "amount", "date", "total", "bank",
	"beginning", "ending", "purchase", "page",
}

func containsCommonWords(pages []string) bool {
	combined := strings.ToLower(strings.Join(pages, " "))
	for _, word := range commonWords {
		if strings.Contains(combined, word) {
			return true
		}
	}
	return false
}

// extractByRow uses GetTextByRow, joining the words of each row.
func extractByRow(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var lines []string
		for _, row := range rows {
			parts := make([]string, 0, len(row.Content))
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			if line := strings.TrimSpace(strings.Join(parts, " ")); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

// columnGap is the horizontal distance, in points, treated as a column
// break when rebuilding rows from text objects.
const columnGap = 15

// extractByContent rebuilds rows from raw text objects: pieces are grouped
// by rounded Y (top of the page first) and ordered by X within a row.
func extractByContent(r *pdf.Reader, numPages int) []string {
	type piece struct {
		x float64
		s string
	}

	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		if len(content.Text) == 0 {
			continue
		}

		rows := make(map[int][]piece)
		for _, t := range content.Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			y := int(math.Round(t.Y))
			rows[y] = append(rows[y], piece{x: t.X, s: t.S})
		}

		ys := make([]int, 0, len(rows))
		for y := range rows {
			ys = append(ys, y)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(ys)))

		var lines []string
		for _, y := range ys {
			items := rows[y]
			sort.Slice(items, func(a, b int) bool {
				return items[a].x < items[b].x
			})

			var sb strings.Builder
			for j, item := range items {
				if j > 0 && item.x-items[j-1].x > columnGap {
					sb.WriteString("  ")
				}
				sb.WriteString(item.s)
			}
			if line := strings.TrimSpace(sb.String()); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

func extractByPagePlainText(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		fonts := make(map[string]*pdf.Font)
		for _, name := range page.Fonts() {
			f := page.Font(name)
			fonts[name] = &f
		}

		text, err := page.GetPlainText(fonts)
		if err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			pages = append(pages, text)
		}
	}
	return pages
}

func extractByReaderPlainText(r *pdf.Reader) string {
	reader, err := r.GetPlainText()
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func totalTextLen(pages []string) int {
	n := 0
	for _, p := range pages {
		n += len(strings.TrimSpace(p))
	}
	return n
}

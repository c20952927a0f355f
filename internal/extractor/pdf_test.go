package extractor

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPDF(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"header", []byte("%PDF-1.7\n..."), true},
		{"leading whitespace", []byte("\r\n%PDF-1.4"), true},
		{"plain text", []byte("Account # 42"), false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPDF(tt.data))
		})
	}
}

func TestExtractBytes_NotPDF(t *testing.T) {
	_, err := ExtractBytes([]byte("Account # 42\nChecks Paid"))
	assert.True(t, errors.Is(err, ErrNotPDF))
}

func TestExtractPages_Corrupt(t *testing.T) {
	data := []byte("%PDF-1.4\nthis is not really a pdf\n%%EOF")
	pages, err := ExtractPages(bytes.NewReader(data), int64(len(data)))
	assert.Error(t, err)
	assert.Nil(t, pages)
}

func TestExtractFile_Missing(t *testing.T) {
	_, err := ExtractFile(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}

func TestJoinPages(t *testing.T) {
	assert.Equal(t, "page one\npage two", JoinPages([]string{"page one", "page two"}))
	assert.Equal(t, "", JoinPages(nil))
}

func TestIsReadableText(t *testing.T) {
	statement := "Primary Checking Account # 000009752\nBeginning Balance on June 5, 2003 $7,126.11"
	garbage := strings.Repeat("éÿÃ©ƒ", 30)

	tests := []struct {
		name  string
		pages []string
		want  bool
	}{
		{"statement text", []string{statement}, true},
		{"too short", []string{"Account 1"}, false},
		{"undecoded font output", []string{garbage}, false},
		{"no statement vocabulary", []string{strings.Repeat("lorem ipsum ", 10)}, false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsReadableText(tt.pages))
		})
	}
}

package core

import (
	"strings"
	"unicode"
)

// fieldReplacer turns each tab and each line break into a single space.
// CRLF is listed first so it collapses to one space rather than two.
var fieldReplacer = strings.NewReplacer(
	"\r\n", " ",
	"\n", " ",
	"\t", " ",
)

// SanitizeField makes a value safe for a tab-separated paste target.
// Applying it twice gives the same result as applying it once.
func SanitizeField(value string) string {
	return strings.TrimSpace(fieldReplacer.Replace(value))
}

// SerializeTSV renders a header line followed by one line per row.
//
// Header labels are joined verbatim and only trailing whitespace is trimmed.
// Every row field is passed through SanitizeField. Lines are separated by a
// single "\n" with no trailing newline. Callers guard against zero rows; if
// rows is empty the header line alone is returned.
func SerializeTSV(header []string, rows []FlatRow) string {
	var b strings.Builder
	b.WriteString(strings.TrimRightFunc(strings.Join(header, "\t"), unicode.IsSpace))

	for _, row := range rows {
		b.WriteByte('\n')
		for i, field := range row {
			if i > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(SanitizeField(field))
		}
	}
	return b.String()
}

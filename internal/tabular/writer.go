package tabular

import "strings"

// QuoteField wraps a field in double quotes, escaping embedded quotes
// by doubling them. Cleaned CSV output quotes every field so embedded
// delimiters and newlines survive a round trip.
func QuoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// WriteCSV renders a header plus rows as delimited text with every
// field quoted. Rows shorter than the header are padded with empty
// fields.
func WriteCSV(headers []string, rows [][]string, delim rune) string {
	var b strings.Builder
	writeLine(&b, headers, delim)
	for _, row := range rows {
		if len(row) < len(headers) {
			padded := make([]string, len(headers))
			copy(padded, row)
			row = padded
		}
		writeLine(&b, row, delim)
	}
	return b.String()
}

func writeLine(b *strings.Builder, fields []string, delim rune) {
	for i, f := range fields {
		if i > 0 {
			b.WriteRune(delim)
		}
		b.WriteString(QuoteField(f))
	}
	b.WriteByte('\n')
}

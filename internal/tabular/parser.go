package tabular

import (
	"bufio"
	"os"
	"strings"
)

// Record is one data row keyed by header name. Key order follows the
// header order recorded in Table.Headers; values are raw, untrimmed.
type Record map[string]string

// Table is the parsed form of a delimited text document: the header row
// plus one Record per non-blank data line.
type Table struct {
	Headers []string
	Records []Record
}

// Parse scans a delimited text document into a Table. The scan is
// quote-aware: a delimiter or line break inside double quotes is literal
// content, and a doubled quote ("") inside a quoted field emits one
// literal quote. \r\n, \r and \n all terminate a line; trailing blank
// lines are ignored. Missing trailing fields become empty strings.
func Parse(text string, delim rune) *Table {
	lines := splitLines(text)
	t := &Table{}
	if len(lines) == 0 {
		return t
	}
	t.Headers = splitFields(lines[0], delim)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitFields(line, delim)
		rec := make(Record, len(t.Headers))
		for i, h := range t.Headers {
			if i < len(fields) {
				rec[h] = fields[i]
			} else {
				rec[h] = ""
			}
		}
		t.Records = append(t.Records, rec)
	}
	return t
}

// splitLines breaks text into logical lines, treating line breaks inside
// double quotes as field content. \r\n collapses to a single break.
func splitLines(text string) []string {
	var lines []string
	var cur strings.Builder
	inQuotes := false
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			// Doubled quote inside a quoted field is a literal quote.
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				cur.WriteRune('"')
				cur.WriteRune('"')
				i++
				continue
			}
			inQuotes = !inQuotes
			cur.WriteRune(ch)
		case (ch == '\n' || ch == '\r') && !inQuotes:
			if ch == '\r' && i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
			lines = append(lines, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(ch)
		}
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	// Drop trailing blank lines so a final newline doesn't fabricate rows.
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// splitFields splits one logical line into fields using the same
// quote-aware scan as splitLines.
func splitFields(line string, delim rune) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				cur.WriteRune('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case ch == delim && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(ch)
		}
	}
	fields = append(fields, cur.String())
	return fields
}

// SniffDelimiter inspects the first line of a file and picks the most
// frequent candidate among ',', ';' and '\t'. Defaults to ','.
func SniffDelimiter(path string) rune {
	f, err := os.Open(path)
	if err != nil {
		return ','
	}
	defer f.Close()
	s := bufio.NewScanner(f)
	s.Buffer(make([]byte, 0, 1<<20), 1<<20)
	if !s.Scan() {
		return ','
	}
	line := s.Text()
	best, bestCount := ',', strings.Count(line, ",")
	if c := strings.Count(line, ";"); c > bestCount {
		best, bestCount = ';', c
	}
	if c := strings.Count(line, "\t"); c > bestCount {
		best = '\t'
	}
	return best
}

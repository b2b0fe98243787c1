package tabular

import (
	"fmt"
	"strings"
)

// ValidateStructure reports structural problems with a header row:
// no headers at all, blank header names, and duplicate names
// (case- and whitespace-insensitive). When expected is non-empty it
// additionally reports expected headers missing from the file.
// The check is advisory and returns human-readable findings; an empty
// slice means the structure is usable.
func ValidateStructure(headers, expected []string) []string {
	var errs []string
	if len(headers) == 0 {
		errs = append(errs, "file has no header row")
		return errs
	}
	seen := make(map[string]int, len(headers))
	for i, h := range headers {
		key := strings.ToLower(strings.TrimSpace(h))
		if key == "" {
			errs = append(errs, fmt.Sprintf("header column %d is blank", i+1))
			continue
		}
		if first, dup := seen[key]; dup {
			errs = append(errs, fmt.Sprintf("duplicate header %q (columns %d and %d)", key, first+1, i+1))
			continue
		}
		seen[key] = i
	}
	for _, want := range expected {
		key := strings.ToLower(strings.TrimSpace(want))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; !ok {
			errs = append(errs, fmt.Sprintf("expected header %q not found", key))
		}
	}
	return errs
}

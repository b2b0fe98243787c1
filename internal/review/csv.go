package review

import "github.com/KaramelBytes/staylens-cli/internal/tabular"

// ToCSV renders cleaned rows as the canonical cleaned-CSV artifact:
// fixed header order, every field re-quoted.
func ToCSV(rows []*Review) string {
	data := make([][]string, len(rows))
	for i, r := range rows {
		data[i] = r.CSVRow()
	}
	return tabular.WriteCSV(CSVHeader, data, ',')
}

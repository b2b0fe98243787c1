package review

import "strings"

// mojibakeReplacer fixes the common UTF-8-read-as-Latin-1 artifacts
// that show up in review exports. Replacer matching is argument-order
// sensitive, so longer sequences sharing a prefix come before shorter
// ones and the stray "Â" rule comes last.
var mojibakeReplacer = strings.NewReplacer(
	"â€™", "'",
	"â€˜", "'",
	"â€œ", "\"",
	"â€“", "–",
	"â€”", "—",
	"â€¦", "…",
	"â€", "\"",
	"Ã©", "é",
	"Ã¨", "è",
	"Ãª", "ê",
	"Ã¡", "á",
	"Ã¢", "â",
	"Ã£", "ã",
	"Ã¤", "ä",
	"Ã¥", "å",
	"Ã§", "ç",
	"Ã­", "í",
	"Ã®", "î",
	"Ã³", "ó",
	"Ã´", "ô",
	"Ãµ", "õ",
	"Ã¶", "ö",
	"Ãº", "ú",
	"Ã¼", "ü",
	"Ã±", "ñ",
	"Ã ", "à",
	"Â ", " ",
	"Â", "",
)

// CleanText trims a review body and repairs mojibake artifacts.
func CleanText(s string) string {
	return strings.TrimSpace(mojibakeReplacer.Replace(s))
}

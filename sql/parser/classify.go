package parser

import "strings"

// unsupportedMarkers are substrings whose presence in a SELECT forces
// the raw fallback before any grammar parsing happens. The list must
// stay a superset of every construct the fast path cannot express:
// a needless fallback is harmless, a fast-path misparse is not.
var unsupportedMarkers = []string{
	"group by",
	"having",
	" join ",
	" union ",
	"(select",
	"( select",
	"stddev",
	"percentile",
	"distinct",
	" offset ",
	" with ",
}

// scanUnsupported reports why a lowercased SELECT statement must take
// the fallback path, or "" when the grammar may attempt it. Statements
// led by WITH never reach here; the classifier routes unknown leading
// keywords straight to the fallback.
func scanUnsupported(lower string) string {
	for _, marker := range unsupportedMarkers {
		if strings.Contains(lower, marker) {
			return "contains " + strings.TrimSpace(marker)
		}
	}
	return ""
}

package importer

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/harborpoint/creimport/internal/mapper"
)

// maxSuggestionDistance caps how far a header may be from a known alias
// before a suggestion does more harm than good. Two edits covers the typos
// and spacing slips seen in hand-edited exports without matching unrelated
// columns.
const maxSuggestionDistance = 2

// SuggestAlias returns the known alias nearest to the unmapped column name,
// or "" when nothing is close enough. Comparison is case-insensitive with
// whitespace collapsed, matching how aliases are stored.
func SuggestAlias(column string) string {
	needle := strings.ToLower(strings.Join(strings.Fields(column), " "))
	if needle == "" {
		return ""
	}

	best := ""
	bestDist := maxSuggestionDistance + 1
	for alias := range mapper.KnownAliases() {
		d := levenshtein.ComputeDistance(needle, alias)
		if d < bestDist || (d == bestDist && alias < best) {
			best = alias
			bestDist = d
		}
	}
	if bestDist > maxSuggestionDistance {
		return ""
	}
	return best
}

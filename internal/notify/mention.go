package notify

import (
	"strings"

	"github.com/samber/lo"
)

// MentionCandidates extracts the names text may mention. Every
// whitespace-separated token containing "@" contributes whatever follows its
// last "@". This is a heuristic: "me@bob" yields "bob" and "@bob," yields
// "bob,". Candidates are deduplicated in first-seen order.
func MentionCandidates(text string) []string {
	var names []string
	for _, tok := range strings.Fields(text) {
		i := strings.LastIndex(tok, "@")
		if i < 0 {
			continue
		}
		if name := tok[i+1:]; name != "" {
			names = append(names, name)
		}
	}
	return lo.Uniq(names)
}

package textutil

import (
	"regexp"
	"strings"

	"github.com/antzucaro/matchr"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, " ")
	return name
}

// reports whether any matcher appears inside name as a substring.
// matchers are assumed to already be lowercase
func ContainsAny(name string, matchers []string) bool {
	name = NormalizeName(name)
	for _, m := range matchers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}

// returns the matcher closest to name by edit distance, along with the
// distance itself. used to flag probable denylist typos
func NearestMatch(name string, matchers []string) (string, int) {
	name = NormalizeName(name)
	best := ""
	bestDist := -1
	for _, m := range matchers {
		d := matchr.Levenshtein(name, m)
		if bestDist < 0 || d < bestDist {
			best = m
			bestDist = d
		}
	}
	return best, bestDist
}

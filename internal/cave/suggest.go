package cave

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Suggest returns the valid choice closest to input, or "" when nothing is
// close enough or input already is a valid choice.
func Suggest(input string, choices []string) string {
	in := strings.ToLower(strings.Join(strings.Fields(input), " "))
	if in == "" {
		return ""
	}
	best, bestDist := "", -1
	for _, c := range choices {
		if c == input {
			return ""
		}
		if c == in {
			return c
		}
		dist := levenshtein.ComputeDistance(in, c)
		if dist > suggestLimit(len(c)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = c, dist
		}
	}
	return best
}

func suggestLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

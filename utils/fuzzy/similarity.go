package fuzzy

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// EditSimilarity returns 1 - distance/maxLen over the two strings with
// spaces and dots removed and case folded. It returns a value between 0.0 and 1.0.
func EditSimilarity(a, b string) float64 {
	s1 := compact(a)
	s2 := compact(b)

	if s1 == "" && s2 == "" {
		return 1.0
	}
	if s1 == "" || s2 == "" {
		return 0.0
	}

	maxLen := len([]rune(s1))
	if l := len([]rune(s2)); l > maxLen {
		maxLen = l
	}

	dist := levenshtein.ComputeDistance(s1, s2)
	return 1.0 - float64(dist)/float64(maxLen)
}

func compact(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ".", "")
	return s
}

// Package fuzzy scores how alike two free-text values (names, addresses) are.
package fuzzy

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// TokenSetRatio returns an order-independent similarity in [0,100].
//
// Both strings are lowercased and stripped of punctuation, then split into
// token sets. The shared tokens are compared against each side's full token
// list, so a string whose tokens are a subset of the other's scores 100.
// Empty input scores 0.
func TokenSetRatio(a, b string) int {
	p1, p2 := process(a), process(b)
	if p1 == "" || p2 == "" {
		return 0
	}

	t1, t2 := tokenSet(p1), tokenSet(p2)

	var shared, only1, only2 []string
	for tok := range t1 {
		if t2[tok] {
			shared = append(shared, tok)
		} else {
			only1 = append(only1, tok)
		}
	}
	for tok := range t2 {
		if !t1[tok] {
			only2 = append(only2, tok)
		}
	}
	sort.Strings(shared)
	sort.Strings(only1)
	sort.Strings(only2)

	sect := strings.Join(shared, " ")
	combined1 := strings.TrimSpace(sect + " " + strings.Join(only1, " "))
	combined2 := strings.TrimSpace(sect + " " + strings.Join(only2, " "))

	best := ratio(sect, combined1)
	if r := ratio(sect, combined2); r > best {
		best = r
	}
	if r := ratio(combined1, combined2); r > best {
		best = r
	}
	return best
}

// ratio is the indel-weighted edit similarity scaled to 0..100:
// (len(a)+len(b)-distance)/(len(a)+len(b)) with substitutions costing 2.
func ratio(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 0
	}
	dist := levenshtein.DistanceForStrings(ra, rb, levenshtein.DefaultOptions)
	return int(math.RoundToEven(100 * float64(total-dist) / float64(total)))
}

// process lowercases s and replaces everything but letters, digits and
// underscores with spaces.
func process(s string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return strings.TrimSpace(mapped)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(s) {
		set[tok] = true
	}
	return set
}

package fuzzy

import "github.com/Aashish23092/loan-reconciliation/utils"

// DefaultThreshold is the minimum score at which two values count as the same.
const DefaultThreshold = 85

// Scorer rates the similarity of two strings on a 0..100 scale.
type Scorer interface {
	Score(a, b string) int
}

// ScorerFunc adapts a plain function to Scorer.
type ScorerFunc func(a, b string) int

// Score calls f(a, b).
func (f ScorerFunc) Score(a, b string) int {
	return f(a, b)
}

// TokenSetScorer scores with TokenSetRatio.
var TokenSetScorer Scorer = ScorerFunc(TokenSetRatio)

// BestScore returns the highest score over all cross pairs of the normalized
// values, or 0 when either set is empty.
func BestScore(scorer Scorer, setA, setB []string) int {
	best := 0
	for _, a := range setA {
		for _, b := range setB {
			if score := scorer.Score(utils.NormalizeName(a), utils.NormalizeName(b)); score > best {
				best = score
			}
		}
	}
	return best
}

// AnyMatch reports whether some cross pair of setA and setB reaches threshold.
func AnyMatch(scorer Scorer, setA, setB []string, threshold int) bool {
	for _, a := range setA {
		for _, b := range setB {
			if scorer.Score(utils.NormalizeName(a), utils.NormalizeName(b)) >= threshold {
				return true
			}
		}
	}
	return false
}

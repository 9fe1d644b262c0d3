package recon

import (
	"math"
	"sort"
	"strings"

	"github.com/agext/levenshtein"
)

var levParams = levenshtein.NewParams()

// Ratio returns a 0..100 similarity between two strings based on
// Levenshtein edit distance. Two empty strings score 0.
func Ratio(a, b string) int {
	if a == "" && b == "" {
		return 0
	}
	return int(math.Round(levenshtein.Similarity(a, b, levParams) * 100))
}

// TokenSortRatio is the order-tolerant full match: both strings are
// lower-cased, split into tokens, sorted, and rejoined before scoring,
// so reordered words still score highly while missing or extra words
// reduce the score. Symmetric.
func TokenSortRatio(a, b string) int {
	return Ratio(tokenSort(a), tokenSort(b))
}

func tokenSort(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	sort.Strings(fields)
	return strings.Join(fields, " ")
}

// PartialRatio is the substring-tolerant partial match: the shorter
// string is slid across the longer one and the best window alignment
// wins, so extra leading or trailing content in the longer string does
// not hurt the score.
func PartialRatio(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	if len(ra) == 0 {
		return 0
	}
	if len(ra) == len(rb) {
		return Ratio(string(ra), string(rb))
	}
	best := 0
	for i := 0; i+len(ra) <= len(rb); i++ {
		score := Ratio(string(ra), string(rb[i:i+len(ra)]))
		if score > best {
			best = score
		}
		if best == 100 {
			break
		}
	}
	return best
}

// BestMatch holds the outcome of a best-candidate search.
type BestMatch struct {
	Value string
	Score int
	Index int
}

// ExtractOne returns the candidate with the highest score against the
// query, scanning in order so ties resolve to the earliest index. The
// second return is false when candidates is empty.
func ExtractOne(query string, candidates []string, scorer func(a, b string) int) (BestMatch, bool) {
	if len(candidates) == 0 {
		return BestMatch{}, false
	}
	best := BestMatch{Value: candidates[0], Score: scorer(query, candidates[0])}
	for i := 1; i < len(candidates); i++ {
		if s := scorer(query, candidates[i]); s > best.Score {
			best = BestMatch{Value: candidates[i], Score: s, Index: i}
		}
	}
	return best, true
}

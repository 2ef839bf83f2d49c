package scoring

import "strings"

type RatioStrategy struct{}

func NewRatioStrategy() *RatioStrategy {
	return &RatioStrategy{}
}

func (s *RatioStrategy) Name() string {
	return "ratio"
}

// Score joins the tokens with spaces and computes 2*M/T, where M is the total
// length of the longest matching blocks between the two strings and T the sum
// of their lengths. Two empty strings score 1.
func (s *RatioStrategy) Score(query, reference []string) float64 {
	a := []rune(strings.Join(query, " "))
	b := []rune(strings.Join(reference, " "))

	total := len(a) + len(b)
	if total == 0 {
		return 1.0
	}

	matched := matchedLength(a, b, 0, len(a), 0, len(b))
	return 2.0 * float64(matched) / float64(total)
}

// matchedLength sums the sizes of the matching blocks found by recursively
// splitting around the longest common substring of a[alo:ahi] and b[blo:bhi].
func matchedLength(a, b []rune, alo, ahi, blo, bhi int) int {
	i, j, size := longestMatch(a, b, alo, ahi, blo, bhi)
	if size == 0 {
		return 0
	}

	return size +
		matchedLength(a, b, alo, i, blo, j) +
		matchedLength(a, b, i+size, ahi, j+size, bhi)
}

func longestMatch(a, b []rune, alo, ahi, blo, bhi int) (besti, bestj, bestsize int) {
	besti, bestj = alo, blo

	// j2len[j] holds the length of the match ending at a[i-1], b[j].
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		next := make(map[int]int)
		for j := blo; j < bhi; j++ {
			if a[i] != b[j] {
				continue
			}
			k := j2len[j-1] + 1
			next[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = next
	}

	return besti, bestj, bestsize
}

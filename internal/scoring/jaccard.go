package scoring

type JaccardStrategy struct{}

func NewJaccardStrategy() *JaccardStrategy {
	return &JaccardStrategy{}
}

func (s *JaccardStrategy) Name() string {
	return "jaccard"
}

// Score computes the Jaccard similarity of the two token sets:
// |intersection| / |union|. Returns 0 when both sets are empty.
func (s *JaccardStrategy) Score(query, reference []string) float64 {
	qset := toSet(query)
	rset := toSet(reference)

	intersection := 0
	for token := range qset {
		if _, ok := rset[token]; ok {
			intersection++
		}
	}

	union := len(qset) + len(rset) - intersection
	if union == 0 {
		return 0.0
	}

	return float64(intersection) / float64(union)
}

func toSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

package scoring

// Strategy scores how well a tokenized query matches a tokenized reference
// question. Scores are in [0, 1], higher is better.
type Strategy interface {
	Score(query, reference []string) float64
	Name() string
}

package chat

import (
	"math"
	"sync"

	"github.com/angeloszaimis/chatbot-api/internal/scoring"
	"github.com/angeloszaimis/chatbot-api/internal/store"
)

// FallbackReply is returned when no reference question scores above the
// threshold.
const FallbackReply = "Δεν καταλαβαίνω την ερώτηση. Παρακαλώ δοκιμάστε ξανά με διαφορετική διατύπωση."

type refKey struct {
	topic string
	idx   int
}

type refMeta struct {
	tokens []string
	answer string
}

// Matcher answers free-text questions by scoring them against the reference
// questions of every known topic. The index is rebuilt whenever the FAQ set
// changes, so all reads go through the lock.
type Matcher struct {
	mu        sync.RWMutex
	index     map[string][]refKey
	meta      map[refKey]refMeta
	strategy  scoring.Strategy
	threshold float64
}

// Result is the outcome of one match attempt.
type Result struct {
	Reply       string
	Probability float64
	Tokens      []string
	Topic       string
	Matched     bool
}

func NewMatcher(strategy scoring.Strategy, threshold float64) *Matcher {
	return &Matcher{
		index:     make(map[string][]refKey),
		meta:      make(map[refKey]refMeta),
		strategy:  strategy,
		threshold: threshold,
	}
}

// Reload rebuilds the inverted index and reference metadata from the given
// topics, replacing the previous index atomically.
func (m *Matcher) Reload(topics []store.Topic) {
	index := make(map[string][]refKey)
	meta := make(map[refKey]refMeta)

	for _, topic := range topics {
		for idx, ref := range topic.References {
			tokens := Tokenize(ref)
			key := refKey{topic: topic.Name, idx: idx}
			meta[key] = refMeta{tokens: tokens, answer: topic.Answer}

			for _, token := range uniqueTokens(tokens) {
				index[token] = append(index[token], key)
			}
		}
	}

	m.mu.Lock()
	m.index = index
	m.meta = meta
	m.mu.Unlock()
}

// Match scores the message against every reference question sharing at least
// one token with it and returns the best answer, or the fallback reply when
// the best score is below the threshold.
func (m *Matcher) Match(message string) Result {
	tokens := Tokenize(message)

	m.mu.RLock()
	defer m.mu.RUnlock()

	candidates := make(map[refKey]struct{})
	for _, token := range uniqueTokens(tokens) {
		for _, key := range m.index[token] {
			candidates[key] = struct{}{}
		}
	}

	var (
		best      refKey
		bestScore float64
		found     bool
	)
	for key := range candidates {
		score := m.strategy.Score(tokens, m.meta[key].tokens)
		if score > bestScore {
			best = key
			bestScore = score
			found = true
		}
	}

	if !found || bestScore < m.threshold {
		return Result{
			Reply:       FallbackReply,
			Probability: 0.0,
			Tokens:      tokens,
		}
	}

	return Result{
		Reply:       m.meta[best].answer,
		Probability: math.Round(bestScore*1000) / 1000,
		Tokens:      tokens,
		Topic:       best.topic,
		Matched:     true,
	}
}

func uniqueTokens(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

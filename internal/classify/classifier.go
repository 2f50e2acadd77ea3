// Package classify assigns a topic label to an article using weighted
// keyword scoring. Matching is intentionally cheap: lowercase substring
// and word-boundary checks, no tokenization pass.
package classify

import "strings"

const (
	titleWeight     = 5
	bodyWeight      = 2
	wholeWordWeight = 1

	// DefaultMinScore is the floor a topic must reach before it beats
	// the "general" fallback.
	DefaultMinScore = 3

	// General is the fallback label for articles no topic claims.
	General = "general"
)

// Topic pairs a label with the keywords that vote for it. Table order
// matters: earlier topics win score ties.
type Topic struct {
	Name     string
	Keywords []string
}

// Classifier scores articles against an ordered topic table.
type Classifier struct {
	MinScore int
	topics   []Topic
}

// New builds a classifier over the default topic table.
func New() *Classifier {
	return &Classifier{MinScore: DefaultMinScore, topics: DefaultTopics()}
}

// NewWithTopics builds a classifier over a custom table, keeping its order.
func NewWithTopics(topics []Topic, minScore int) *Classifier {
	if minScore <= 0 {
		minScore = DefaultMinScore
	}
	return &Classifier{MinScore: minScore, topics: topics}
}

// Topics returns the classifier's table in declared order.
func (c *Classifier) Topics() []Topic {
	return c.topics
}

// Classify returns the best-scoring topic for the given title and body,
// or General when no topic reaches MinScore. Deterministic: identical
// input always yields the same label.
func (c *Classifier) Classify(title, body string) string {
	name, _ := c.classify(title, body)
	return name
}

// Score returns the winning topic along with its score, mostly for
// diagnostics and tests.
func (c *Classifier) Score(title, body string) (string, int) {
	return c.classify(title, body)
}

func (c *Classifier) classify(title, body string) (string, int) {
	lowerTitle := strings.ToLower(title)
	lowerBody := strings.ToLower(body)
	combined := lowerTitle + " " + lowerBody

	best := General
	bestScore := 0
	for _, topic := range c.topics {
		score := 0
		matched := 0
		for _, kw := range topic.Keywords {
			// A title hit absorbs the body hit for the same keyword;
			// only these two arms count toward the match bonus.
			if strings.Contains(lowerTitle, kw) {
				score += titleWeight
				matched++
			} else if strings.Contains(lowerBody, kw) {
				score += bodyWeight
				matched++
			}
			if containsWord(combined, kw) {
				score += wholeWordWeight
			}
		}
		// Multiple distinct keywords landing is a stronger signal than
		// any single hit, so it earns a growing bonus.
		if matched >= 2 {
			score += 2 * matched
		}
		// Strict comparison keeps ties with the earlier topic.
		if score > bestScore {
			bestScore = score
			best = topic.Name
		}
	}

	if bestScore < c.MinScore {
		return General, bestScore
	}
	return best, bestScore
}

// containsWord checks whether word appears in text at word boundaries,
// so "art" does not match inside "startup".
func containsWord(text, word string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)

		beforeOK := start == 0 || !isAlphaNum(text[start-1])
		afterOK := end == len(text) || !isAlphaNum(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
		if idx >= len(text) {
			return false
		}
	}
}

func isAlphaNum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

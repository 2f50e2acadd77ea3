package fetch

import (
	"sync"
	"time"
)

// Outcome classifies how a fetch attempt ended.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeTimeout Outcome = "timeout"
	OutcomeError   Outcome = "error"
)

// Sample records one fetch attempt against one source.
type Sample struct {
	Source   string
	Duration time.Duration
	Outcome  Outcome
	When     time.Time
}

// SourceStats aggregates the samples for a single source.
type SourceStats struct {
	Source      string
	Attempts    int
	Successes   int
	Failures    int
	AvgDuration time.Duration
}

// Stats is the overall health picture across all sources.
type Stats struct {
	Attempts    int
	Successes   int
	Failures    int
	SuccessRate float64 // 0..1, 0 when no attempts yet
	Sources     map[string]SourceStats
}

// Health keeps performance samples per source. All methods are safe
// for concurrent use; the orchestrator records from many goroutines.
type Health struct {
	mu      sync.Mutex
	samples []Sample
}

// NewHealth returns an empty tracker.
func NewHealth() *Health {
	return &Health{}
}

// Record appends a sample for the given source.
func (h *Health) Record(source string, d time.Duration, outcome Outcome) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.samples = append(h.samples, Sample{
		Source:   source,
		Duration: d,
		Outcome:  outcome,
		When:     time.Now(),
	})
}

// Samples returns a copy of all recorded samples, oldest first.
func (h *Health) Samples() []Sample {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Sample, len(h.samples))
	copy(out, h.samples)
	return out
}

// Stats aggregates the recorded samples.
func (h *Health) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()

	stats := Stats{Sources: make(map[string]SourceStats)}
	totals := make(map[string]time.Duration)
	for _, s := range h.samples {
		stats.Attempts++
		src := stats.Sources[s.Source]
		src.Source = s.Source
		src.Attempts++
		if s.Outcome == OutcomeSuccess {
			stats.Successes++
			src.Successes++
		} else {
			stats.Failures++
			src.Failures++
		}
		totals[s.Source] += s.Duration
		stats.Sources[s.Source] = src
	}
	for name, src := range stats.Sources {
		src.AvgDuration = totals[name] / time.Duration(src.Attempts)
		stats.Sources[name] = src
	}
	if stats.Attempts > 0 {
		stats.SuccessRate = float64(stats.Successes) / float64(stats.Attempts)
	}
	return stats
}

// Reset drops all samples, typically alongside a quarantine reset.
func (h *Health) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.samples = nil
}

package pipeline

import (
	"slices"
	"sync"
	"time"

	"github.com/Piqzaa/HTML-to-Twig/internal/convert"
)

type outcome uint8

const (
	outcomeConverted outcome = iota
	outcomeCacheHit
	outcomeFailed
)

type event struct {
	at      time.Time
	target  convert.Target
	outcome outcome
	took    time.Duration
}

// Latency summarizes conversion times in milliseconds. Percentiles use the
// nearest-rank method, so every value is an observed sample.
type Latency struct {
	Count  int     `json:"count"`
	MinMs  float64 `json:"min_ms"`
	MaxMs  float64 `json:"max_ms"`
	MeanMs float64 `json:"mean_ms"`
	P50Ms  float64 `json:"p50_ms"`
	P95Ms  float64 `json:"p95_ms"`
	P99Ms  float64 `json:"p99_ms"`
}

// TargetStats counts what happened to recent requests for one target.
// Latency covers fresh conversions only; cache hits cost nothing.
type TargetStats struct {
	Converted int     `json:"converted"`
	CacheHits int     `json:"cache_hits"`
	Failed    int     `json:"failed"`
	Latency   Latency `json:"latency"`
}

type StatsSnapshot struct {
	Window  string                         `json:"window"`
	Total   TargetStats                    `json:"total"`
	Targets map[convert.Target]TargetStats `json:"targets"`
}

// ConversionStats keeps a rolling window of conversion outcomes, broken
// down by target.
type ConversionStats struct {
	mu     sync.Mutex
	window time.Duration
	events []event
	now    func() time.Time
}

func NewConversionStats(window time.Duration) *ConversionStats {
	if window <= 0 {
		window = time.Hour
	}
	return &ConversionStats{window: window, now: time.Now}
}

func (s *ConversionStats) Converted(t convert.Target, took time.Duration) {
	s.add(t, outcomeConverted, max(took, 0))
}

func (s *ConversionStats) CacheHit(t convert.Target) {
	s.add(t, outcomeCacheHit, 0)
}

func (s *ConversionStats) Failed(t convert.Target) {
	s.add(t, outcomeFailed, 0)
}

func (s *ConversionStats) add(t convert.Target, o outcome, took time.Duration) {
	if t == "" {
		t = convert.TargetTwig
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.expire(now)
	s.events = append(s.events, event{at: now, target: t, outcome: o, took: took})
}

// expire drops events older than the window. Events are appended in time
// order, so the expired ones form a prefix.
func (s *ConversionStats) expire(now time.Time) {
	cutoff := now.Add(-s.window)
	i, _ := slices.BinarySearchFunc(s.events, cutoff, func(e event, c time.Time) int {
		return e.at.Compare(c)
	})
	if i > 0 {
		s.events = slices.Delete(s.events, 0, i)
	}
}

func (s *ConversionStats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	s.expire(s.now())
	events := slices.Clone(s.events)
	s.mu.Unlock()

	var all []time.Duration
	byTarget := make(map[convert.Target][]time.Duration)
	snap := StatsSnapshot{
		Window:  s.window.String(),
		Targets: make(map[convert.Target]TargetStats),
	}
	for _, e := range events {
		ts := snap.Targets[e.target]
		switch e.outcome {
		case outcomeConverted:
			ts.Converted++
			snap.Total.Converted++
			byTarget[e.target] = append(byTarget[e.target], e.took)
			all = append(all, e.took)
		case outcomeCacheHit:
			ts.CacheHits++
			snap.Total.CacheHits++
		case outcomeFailed:
			ts.Failed++
			snap.Total.Failed++
		}
		snap.Targets[e.target] = ts
	}
	for t, durations := range byTarget {
		ts := snap.Targets[t]
		ts.Latency = summarize(durations)
		snap.Targets[t] = ts
	}
	snap.Total.Latency = summarize(all)
	return snap
}

func summarize(durations []time.Duration) Latency {
	if len(durations) == 0 {
		return Latency{}
	}
	slices.Sort(durations)
	var sum time.Duration
	for _, d := range durations {
		sum += d
	}
	return Latency{
		Count:  len(durations),
		MinMs:  ms(durations[0]),
		MaxMs:  ms(durations[len(durations)-1]),
		MeanMs: ms(sum / time.Duration(len(durations))),
		P50Ms:  ms(nearestRank(durations, 50)),
		P95Ms:  ms(nearestRank(durations, 95)),
		P99Ms:  ms(nearestRank(durations, 99)),
	}
}

// nearestRank returns the smallest sample with at least pct percent of
// samples at or below it. sorted must be non-empty and ascending.
func nearestRank(sorted []time.Duration, pct int) time.Duration {
	rank := (pct*len(sorted) + 99) / 100
	return sorted[max(rank, 1)-1]
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

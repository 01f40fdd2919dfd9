// Package report aggregates normalized telemetry into race summaries and
// per-driver lap-delta reports.
package report

import (
	"github.com/rs/zerolog"

	"github.com/s0up4200/pitwall/openf1"
)

// Summarizer builds reports from an upstream Fetcher. It keeps no state
// between calls.
type Summarizer struct {
	fetcher     openf1.Fetcher
	logger      zerolog.Logger
	concurrency int
}

// Option configures a Summarizer
type Option func(*Summarizer)

// WithConcurrency caps the number of in-flight fetches per fan-out. Zero or
// less leaves every fetch of a fan-out in flight at once.
func WithConcurrency(limit int) Option {
	return func(s *Summarizer) {
		s.concurrency = limit
	}
}

// NewSummarizer creates a new Summarizer
func NewSummarizer(fetcher openf1.Fetcher, logger zerolog.Logger, opts ...Option) *Summarizer {
	s := &Summarizer{
		fetcher: fetcher,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

package filter

import (
	"github.com/s0up4200/pitwall/report"
)

// Filter decides whether a lap of a session is kept
type Filter interface {
	// Evaluate reports whether lap matches. Evaluation failures count as no
	// match.
	Evaluate(lap report.LapDelta, session report.SessionLapSummary) bool
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Match is Evaluate with the evaluation failure reported
	Match(lap report.LapDelta, session report.SessionLapSummary) (bool, error)

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

// CachingCompiler provides caching for compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}

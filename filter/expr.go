package filter

import (
	"maps"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/pitwall/coerce"
	"github.com/s0up4200/pitwall/report"
)

// DefaultCacheSize is the number of compiled expressions kept by default
const DefaultCacheSize = 100

// Variables is the set of lap variables an expression can reference
var Variables = []string{
	"LapNumber", "LapTime", "HasTime",
	"Sector1", "Sector2", "Sector3",
	"DeltaToBest", "DeltaToPrevious",
	"Position", "IsPit",
	"SessionType", "SessionName",
}

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression  string
	program     *vm.Program
	helperFuncs map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache[CompiledFilter](size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// exprCompiler implements CachingCompiler for expr-based filters
type exprCompiler struct {
	helperFuncs map[string]any
	cache       *lruCache[CompiledFilter]
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helperFuncs: createHelperFunctions(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile compiles an expression into an executable filter. Unknown
// variables are rejected here rather than at evaluation.
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(c.staticEnvironment()),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression:  expression,
		program:     program,
		helperFuncs: c.helperFuncs,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Len()
	}
	return 0
}

// staticEnvironment describes the variable types for compilation. Optional
// values are typed by their resolved form; an unresolved one is nil at
// runtime and fails any comparison, which Evaluate treats as no match.
func (c *exprCompiler) staticEnvironment() map[string]any {
	env := make(map[string]any, len(c.helperFuncs)+len(Variables)+1)
	maps.Copy(env, c.helperFuncs)
	env["LapNumber"] = 0
	env["LapTime"] = 0.0
	env["HasTime"] = false
	env["Sector1"] = 0.0
	env["Sector2"] = 0.0
	env["Sector3"] = 0.0
	env["DeltaToBest"] = 0.0
	env["DeltaToPrevious"] = 0.0
	env["Position"] = 0
	env["IsPit"] = false
	env["SessionType"] = ""
	env["SessionName"] = ""
	env["withinPercent"] = func(any) bool { return false }
	return env
}

// Evaluate evaluates the filter against a lap
func (f *exprFilter) Evaluate(lap report.LapDelta, session report.SessionLapSummary) bool {
	ok, err := f.Match(lap, session)
	return err == nil && ok
}

// Match evaluates the filter against a lap and reports runtime failures,
// such as comparing a missing lap time.
func (f *exprFilter) Match(lap report.LapDelta, session report.SessionLapSummary) (bool, error) {
	result, err := expr.Run(f.program, f.runtimeEnvironment(lap, session))
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			SessionID:  session.SessionID,
			LapNumber:  lap.LapNumber,
			Err:        err,
		}
	}
	// AsBool guarantees the type
	return result.(bool), nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

func (f *exprFilter) runtimeEnvironment(lap report.LapDelta, session report.SessionLapSummary) map[string]any {
	env := make(map[string]any, len(f.helperFuncs)+len(Variables)+1)
	maps.Copy(env, f.helperFuncs)

	env["LapNumber"] = lap.LapNumber
	env["LapTime"] = value(lap.LapTimeSeconds)
	env["HasTime"] = lap.HasTime()
	env["Sector1"] = value(lap.Sector1Seconds)
	env["Sector2"] = value(lap.Sector2Seconds)
	env["Sector3"] = value(lap.Sector3Seconds)
	env["DeltaToBest"] = value(lap.DeltaToBest)
	env["DeltaToPrevious"] = value(lap.DeltaToPrevious)
	env["Position"] = value(lap.Position)
	env["IsPit"] = lap.IsPit
	env["SessionType"] = string(session.Type)
	env["SessionName"] = session.Name
	env["withinPercent"] = createWithinPercentFunc(lap.LapTimeSeconds, session.BestLapSeconds)

	return env
}

// value unwraps an optional value to what an expression sees: nil or the
// plain value.
func value[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}

// createHelperFunctions creates the lap-independent helper functions. The
// case-insensitive matchers carry an "i" prefix because contains and
// startsWith are operators in the expression language.
func createHelperFunctions() map[string]any {
	return map[string]any{
		"icontains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"istartsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
	}
}

// createWithinPercentFunc reports whether the lap is no more than percent
// slower than the session best. Untimed laps never are.
func createWithinPercentFunc(lapTime, best *float64) func(any) bool {
	return func(percent any) bool {
		if lapTime == nil || best == nil {
			return false
		}
		p, ok := coerce.Number(map[string]any{"percent": percent}, "percent")
		if !ok {
			return false
		}
		return *lapTime <= *best*(1+p/100)
	}
}

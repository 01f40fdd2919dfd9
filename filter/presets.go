package filter

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Presets holds named, pre-compiled filters
type Presets struct {
	compiler Compiler
	filters  map[string]CompiledFilter
	mu       sync.RWMutex
}

// NewPresets compiles every named expression. Nothing is registered unless
// all of them compile.
func NewPresets(compiler Compiler, expressions map[string]string) (*Presets, error) {
	p := &Presets{
		compiler: compiler,
		filters:  make(map[string]CompiledFilter, len(expressions)),
	}
	if err := p.RegisterAll(expressions); err != nil {
		return nil, err
	}
	return p, nil
}

// Register registers a new preset or replaces an existing one
func (p *Presets) Register(name, expression string) error {
	return p.RegisterAll(map[string]string{name: expression})
}

// RegisterAll registers several presets at once
func (p *Presets) RegisterAll(expressions map[string]string) error {
	compiled := make(map[string]CompiledFilter, len(expressions))
	for name, expression := range expressions {
		filter, err := p.compiler.Compile(expression)
		if err != nil {
			return fmt.Errorf("failed to compile filter preset '%s': %w", name, err)
		}
		compiled[name] = filter
	}

	p.mu.Lock()
	maps.Copy(p.filters, compiled)
	p.mu.Unlock()
	return nil
}

// Get returns a preset by name
func (p *Presets) Get(name string) (CompiledFilter, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	filter, ok := p.filters[name]
	return filter, ok
}

// Names returns the registered preset names in sorted order
func (p *Presets) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Sorted(maps.Keys(p.filters))
}

// Resolve picks the filter for a request: an inline expression wins over a
// preset name. Both empty resolves to nil.
func (p *Presets) Resolve(expression, preset string) (CompiledFilter, error) {
	switch {
	case expression != "":
		return p.compiler.Compile(expression)
	case preset != "":
		filter, ok := p.Get(preset)
		if !ok {
			return nil, &UnknownPresetError{Name: preset}
		}
		return filter, nil
	default:
		return nil, nil
	}
}

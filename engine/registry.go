package engine

import (
	"fmt"
	"sort"

	"github.com/cwbudde/algo-modular/dsp/core"
)

// Kind names a registered node constructor.
type Kind string

// Params carries the initial parameters of a node being created through a
// registry. Lookups fall back to a caller-supplied default, so factories
// stay total over sparse parameter sets.
type Params map[string]float64

// Get returns the named parameter, or def when absent.
func (p Params) Get(name string, def float64) float64 {
	if v, ok := p[name]; ok {
		return v
	}
	return def
}

// Factory builds a node for a graph with the given configuration.
type Factory func(cfg core.ProcessorConfig, params Params) (Node, error)

// Registry maps kind names to node factories. The zero value is not
// usable; construct with NewRegistry.
type Registry struct {
	factories map[Kind]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[Kind]Factory)}
}

// Register adds a factory under the given kind. Registering the same kind
// twice is rejected so that wiring mistakes surface at startup.
func (r *Registry) Register(kind Kind, f Factory) error {
	if _, ok := r.factories[kind]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateKind, kind)
	}
	r.factories[kind] = f
	return nil
}

// MustRegister is Register panicking on error, for init-time tables.
func (r *Registry) MustRegister(kind Kind, f Factory) {
	if err := r.Register(kind, f); err != nil {
		panic(err)
	}
}

// Kinds returns the registered kind names in sorted order.
func (r *Registry) Kinds() []Kind {
	kinds := make([]Kind, 0, len(r.factories))
	for k := range r.factories {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func (r *Registry) build(kind Kind, cfg core.ProcessorConfig, params Params) (Node, error) {
	f, ok := r.factories[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return f(cfg, params)
}

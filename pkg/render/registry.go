package render

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrUnknownRenderer is wrapped by Lookup when no renderer has the
// requested name.
var ErrUnknownRenderer = errors.New("render: unknown renderer")

// Registry maps output names (document, openapi, tui, ...) to renderers. It
// is safe for concurrent lookups while conversions run.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Renderer
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Renderer)}
}

// Register adds renderers under their Name. The batch is rejected as a whole
// when any renderer is nil, unnamed, or clashes with a known name or with
// another renderer of the batch.
func (r *Registry) Register(renderers ...Renderer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	batch := make(map[string]Renderer, len(renderers))
	for _, renderer := range renderers {
		if renderer == nil {
			return errors.New("render: nil renderer")
		}
		name := renderer.Name()
		if name == "" {
			return errors.New("render: renderer without a name")
		}
		_, known := r.byName[name]
		_, twice := batch[name]
		if known || twice {
			return fmt.Errorf("render: renderer %q registered twice", name)
		}
		batch[name] = renderer
	}
	for name, renderer := range batch {
		r.byName[name] = renderer
	}
	return nil
}

// Lookup returns the renderer registered as name.
func (r *Registry) Lookup(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if renderer, ok := r.byName[name]; ok {
		return renderer, nil
	}
	return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownRenderer, name, r.sortedNames())
}

// Names lists the registered names in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedNames()
}

func (r *Registry) sortedNames() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

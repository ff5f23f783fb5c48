package render

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry stores renderers by name and answers lookups by name or output file
// extension. Registration is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[string]Renderer),
	}
}

// Register adds a renderer under its Name(). Duplicate names return an error.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := strings.TrimSpace(renderer.Name())
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}

	r.renderers[name] = renderer
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get retrieves a renderer by name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[name]
	if !ok {
		return nil, fmt.Errorf("render: renderer %q not found", name)
	}
	return renderer, nil
}

// ForPath returns the renderer whose FileExtension is the longest
// case-insensitive suffix of path, so "api.openapi.json" prefers ".openapi.json"
// over ".json". Ties go to the first renderer by name.
func (r *Registry) ForPath(path string) (Renderer, bool) {
	lower := strings.ToLower(strings.TrimSpace(path))
	if lower == "" {
		return nil, false
	}

	var (
		best    Renderer
		bestLen int
	)
	for _, name := range r.List() {
		renderer, err := r.Get(name)
		if err != nil {
			continue
		}
		ext := strings.ToLower(renderer.FileExtension())
		if ext == "" || !strings.HasSuffix(lower, ext) || len(ext) <= bestLen {
			continue
		}
		best, bestLen = renderer, len(ext)
	}
	return best, best != nil
}

// ForExtension returns the renderer whose FileExtension matches ext exactly
// (with or without the leading dot, case-insensitive).
func (r *Registry) ForExtension(ext string) (Renderer, bool) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return nil, false
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	for _, name := range r.List() {
		renderer, err := r.Get(name)
		if err != nil {
			continue
		}
		if strings.EqualFold(renderer.FileExtension(), ext) {
			return renderer, true
		}
	}
	return nil, false
}

// List returns a sorted list of renderer names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a renderer is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.renderers[name]
	return ok
}

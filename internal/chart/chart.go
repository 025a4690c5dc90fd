// Package chart holds rendered chart payloads keyed by their target id.
package chart

import (
	"slices"
	"sync"
)

// Kind is the chart type understood by the front end.
type Kind string

const (
	KindBar  Kind = "bar"
	KindPie  Kind = "pie"
	KindLine Kind = "line"
)

// Series is one named numeric sequence with an optional colour hint.
type Series struct {
	Name   string    `json:"name,omitempty"`
	Values []float64 `json:"values"`
	Color  string    `json:"color,omitempty"`
}

// Chart is a complete chart definition.
type Chart struct {
	Target string   `json:"target"`
	Kind   Kind     `json:"kind"`
	Labels []string `json:"labels"`
	Series []Series `json:"series"`
}

// Sink consumes rendered charts.
type Sink interface {
	Render(target string, c Chart)
}

// Registry is an in-memory Sink. Rendering a target replaces its previous chart.
type Registry struct {
	mu     sync.RWMutex
	charts map[string]Chart
}

var _ Sink = (*Registry)(nil)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{charts: make(map[string]Chart)}
}

// Render stores c under target, discarding whatever was there.
func (r *Registry) Render(target string, c Chart) {
	c.Target = target
	r.mu.Lock()
	defer r.mu.Unlock()
	r.charts[target] = c
}

// Get returns the chart last rendered for target.
func (r *Registry) Get(target string) (Chart, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.charts[target]
	return c, ok
}

// Targets lists rendered targets in lexical order.
func (r *Registry) Targets() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.charts))
	for t := range r.charts {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

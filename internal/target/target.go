// Package target orders build targets by their dependencies.
package target

import (
	"fmt"

	"github.com/dominikbraun/graph"
)

// The targets an invocation can request.
const (
	Resolve = "resolve" // resolve native dependencies
	Ext     = "ext"     // build the native extension
	Deploy  = "deploy"  // copy shared artifacts next to the extension
	Docs    = "docs"    // build documentation
)

// deps maps each target to the targets it requires.
var deps = map[string][]string{
	Resolve: nil,
	Ext:     {Resolve},
	Deploy:  {Ext},
	Docs:    nil,
}

// Graph is the build-target DAG.
type Graph struct {
	g graph.Graph[string, string]
}

// New builds the standard target graph.
func New() (*Graph, error) {
	g := graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles())
	for name := range deps {
		if err := g.AddVertex(name); err != nil {
			return nil, err
		}
	}
	for name, requires := range deps {
		for _, dep := range requires {
			// Edges point dependency -> dependent so the sort yields
			// dependencies first.
			if err := g.AddEdge(dep, name); err != nil {
				return nil, err
			}
		}
	}
	return &Graph{g: g}, nil
}

// Order returns the requested targets plus their transitive dependencies in
// a deterministic execution order. Unknown targets are errors.
func (t *Graph) Order(requested ...string) ([]string, error) {
	wanted := make(map[string]bool)
	var mark func(name string) error
	mark = func(name string) error {
		requires, ok := deps[name]
		if !ok {
			return fmt.Errorf("unknown target %q", name)
		}
		if wanted[name] {
			return nil
		}
		wanted[name] = true
		for _, dep := range requires {
			if err := mark(dep); err != nil {
				return err
			}
		}
		return nil
	}
	for _, name := range requested {
		if err := mark(name); err != nil {
			return nil, err
		}
	}

	sorted, err := graph.StableTopologicalSort(t.g, func(a, b string) bool { return a < b })
	if err != nil {
		return nil, err
	}
	order := make([]string, 0, len(wanted))
	for _, name := range sorted {
		if wanted[name] {
			order = append(order, name)
		}
	}
	return order, nil
}

package resolver

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
)

// Graph is the result of a resolution.
type Graph struct {
	// Root is the document resolution started from
	Root *Node

	// Order lists every node once, dependencies before dependents.
	// Root is always last.
	Order []*Node

	// Nodes maps canonical paths to nodes
	Nodes map[string]*Node

	// Reads is the number of documents read from the Source
	Reads int

	// CacheHits is the number of imports served from the Cache
	CacheHits int

	deps graph.Graph[string, string]
}

func newDependencyGraph() graph.Graph[string, string] {
	return graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles())
}

func addDocument(g graph.Graph[string, string], path string) error {
	if err := g.AddVertex(path); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		return fmt.Errorf("failed to add document %q to import graph: %w", path, err)
	}
	return nil
}

func addImport(g graph.Graph[string, string], importer, imported, alias string) error {
	err := g.AddEdge(importer, imported, graph.EdgeAttribute("label", alias))
	if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
		return fmt.Errorf("failed to add import %q -> %q to import graph: %w", importer, imported, err)
	}
	return nil
}

// Paths returns the canonical paths of Order.
func (g *Graph) Paths() []string {
	paths := make([]string, len(g.Order))
	for i, node := range g.Order {
		paths[i] = node.Path
	}
	return paths
}

// Dependencies returns the sorted paths imported directly by path.
func (g *Graph) Dependencies(path string) ([]string, error) {
	adjacency, err := g.deps.AdjacencyMap()
	if err != nil {
		return nil, err
	}

	targets, ok := adjacency[path]
	if !ok {
		return nil, fmt.Errorf("document %q is not part of the import graph", path)
	}

	deps := make([]string, 0, len(targets))
	for target := range targets {
		deps = append(deps, target)
	}
	sort.Strings(deps)
	return deps, nil
}

// Dependents returns the sorted paths that import path directly.
func (g *Graph) Dependents(path string) ([]string, error) {
	predecessors, err := g.deps.PredecessorMap()
	if err != nil {
		return nil, err
	}

	sources, ok := predecessors[path]
	if !ok {
		return nil, fmt.Errorf("document %q is not part of the import graph", path)
	}

	dependents := make([]string, 0, len(sources))
	for source := range sources {
		dependents = append(dependents, source)
	}
	sort.Strings(dependents)
	return dependents, nil
}

// DOT writes the import graph in Graphviz DOT format. Edges are labelled
// with the import alias.
func (g *Graph) DOT(w io.Writer) error {
	return draw.DOT(g.deps, w)
}

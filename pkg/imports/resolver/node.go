package resolver

import (
	"github.com/superstrong/yaml-io/pkg/imports/directive"
)

// Node is one resolved document in an import graph.
type Node struct {
	// Path is the canonical absolute path and the identity of the node
	Path string

	// Raw is the unmodified document content
	Raw []byte

	// Document is the scan result of Raw
	Document *directive.Document

	// Imports are the resolved imports in directive order
	Imports []Edge

	// Namespace maps exported names to anchor identities.
	// It is nil until every import of the node is resolved.
	Namespace *Namespace

	// Depth is the import depth at which the node was first reached
	Depth int

	// ResolvedBody is the directive-free body with anchors and aliases
	// rewritten to their physical names. It is set by the assembler.
	ResolvedBody string
}

// Edge is an import of one document by another.
type Edge struct {
	// Alias is the namespace alias declared by the importer
	Alias string

	// Line is the line of the #!import directive in the importer
	Line int

	// Node is the imported document
	Node *Node
}

// Import returns the node imported under alias.
func (n *Node) Import(alias string) (*Node, bool) {
	for _, e := range n.Imports {
		if e.Alias == alias {
			return e.Node, true
		}
	}
	return nil, false
}

package resolver

import (
	"fmt"
	"sort"

	"github.com/superstrong/yaml-io/pkg/imports/directive"
	importErrors "github.com/superstrong/yaml-io/pkg/imports/errors"
)

// AnchorID identifies an anchor by the document that defines it and its
// local name.
type AnchorID struct {
	Path string
	Name string
}

// String returns "path#name".
func (a AnchorID) String() string {
	return a.Path + "#" + a.Name
}

// Namespace is the set of names a document exports to its importers.
type Namespace struct {
	entries map[string]AnchorID
	names   []string
}

func newNamespace() *Namespace {
	return &Namespace{entries: make(map[string]AnchorID)}
}

// Lookup returns the anchor exported under name.
func (ns *Namespace) Lookup(name string) (AnchorID, bool) {
	id, ok := ns.entries[name]
	return id, ok
}

// Names returns the exported names in the order they were added: local
// anchors first, then re-exports.
func (ns *Namespace) Names() []string {
	out := make([]string, len(ns.names))
	copy(out, ns.names)
	return out
}

// Len returns the number of exported names.
func (ns *Namespace) Len() int {
	return len(ns.names)
}

func (ns *Namespace) add(name string, id AnchorID) {
	if _, ok := ns.entries[name]; !ok {
		ns.names = append(ns.names, name)
	}
	ns.entries[name] = id
}

// BuildNamespace computes the exported namespace of node. Every import of
// node must already have its namespace.
func BuildNamespace(node *Node) (*Namespace, error) {
	doc := node.Document
	ns := newNamespace()

	for _, name := range doc.LocalAnchors() {
		ns.add(name, AnchorID{Path: node.Path, Name: name})
	}

	for _, exp := range doc.Exports {
		if !exp.Name.IsQualified() {
			// Local anchors are exported already; the entry only has to exist.
			if !doc.DefinesAnchor(exp.Name.Anchor) {
				return nil, &importErrors.UnknownExportError{
					FilePath: node.Path,
					Line:     exp.Line,
					Name:     exp.Name.String(),
					Message:  fmt.Sprintf("no anchor named %q is defined in this document", exp.Name.Anchor),
				}
			}
			continue
		}

		child, ok := node.Import(exp.Name.Alias)
		if !ok {
			return nil, &importErrors.UnknownExportError{
				FilePath: node.Path,
				Line:     exp.Line,
				Name:     exp.Name.String(),
				Message:  fmt.Sprintf("no import is declared with alias %q", exp.Name.Alias),
			}
		}
		if child.Namespace == nil {
			return nil, fmt.Errorf("namespace of %q is not resolved", child.Path)
		}

		id, ok := child.Namespace.Lookup(exp.Name.Anchor)
		if !ok {
			return nil, &importErrors.UnknownExportError{
				FilePath: node.Path,
				Line:     exp.Line,
				Name:     exp.Name.String(),
				Message:  fmt.Sprintf("%q does not export %q", child.Path, exp.Name.Anchor),
			}
		}

		if existing, ok := ns.Lookup(exp.Name.Anchor); ok {
			if existing == id {
				continue
			}
			return nil, &importErrors.AmbiguousExportError{
				FilePath:    node.Path,
				Line:        exp.Line,
				Name:        exp.Name.Anchor,
				Existing:    existing.String(),
				Conflicting: id.String(),
			}
		}
		ns.add(exp.Name.Anchor, id)
	}

	return ns, nil
}

// ResolveQualified returns the anchor a reference in node's body binds to.
// An unqualified name binds only to an anchor defined in node itself; a
// qualified name binds through the namespace of the import declared under
// its alias.
func (n *Node) ResolveQualified(q directive.QualifiedName) (AnchorID, error) {
	if !q.IsQualified() {
		if !n.Document.DefinesAnchor(q.Anchor) {
			return AnchorID{}, fmt.Errorf("no anchor named %q is defined in this document", q.Anchor)
		}
		return AnchorID{Path: n.Path, Name: q.Anchor}, nil
	}

	child, ok := n.Import(q.Alias)
	if !ok {
		return AnchorID{}, fmt.Errorf("no import is declared with alias %q", q.Alias)
	}
	if child.Namespace == nil {
		return AnchorID{}, fmt.Errorf("namespace of %q is not resolved", child.Path)
	}

	id, ok := child.Namespace.Lookup(q.Anchor)
	if !ok {
		return AnchorID{}, fmt.Errorf("%q does not export %q", child.Path, q.Anchor)
	}
	return id, nil
}

// Visible returns every name a reference in node's body may use: local
// anchors by name and each import's exports as alias.name.
func (n *Node) Visible() map[string]AnchorID {
	visible := make(map[string]AnchorID)
	for _, name := range n.Document.LocalAnchors() {
		visible[name] = AnchorID{Path: n.Path, Name: name}
	}
	for _, e := range n.Imports {
		if e.Node.Namespace == nil {
			continue
		}
		for _, name := range e.Node.Namespace.Names() {
			id, _ := e.Node.Namespace.Lookup(name)
			visible[e.Alias+"."+name] = id
		}
	}
	return visible
}

// VisibleNames returns the keys of Visible in sorted order.
func (n *Node) VisibleNames() []string {
	visible := n.Visible()
	names := make([]string, 0, len(visible))
	for name := range visible {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

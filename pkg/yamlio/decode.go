package yamlio

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/superstrong/yaml-io/pkg/imports/assembler"
	"github.com/superstrong/yaml-io/pkg/imports/directive"
)

// Decode parses the artifact and decodes the root document's content into
// out. Content that came from imported documents is not part of the value;
// it is only reachable through aliases.
func (r *Result) Decode(out any) error {
	content, err := r.content()
	if err != nil || content == nil {
		return err
	}
	return content.Decode(out)
}

// Exports decodes the value of every name the root document exports.
func (r *Result) Exports() (map[string]any, error) {
	names := r.Graph.Root.Namespace.Names()
	exports := make(map[string]any, len(names))
	for _, name := range names {
		var value any
		if err := r.DecodeExport(name, &value); err != nil {
			return nil, err
		}
		exports[name] = value
	}
	return exports, nil
}

// DecodeExport decodes the value of the anchor the root document exports
// under name into out.
func (r *Result) DecodeExport(name string, out any) error {
	id, ok := r.Graph.Root.Namespace.Lookup(name)
	if !ok {
		return r.unknownExport(name)
	}
	physical, ok := r.Artifact.Anchors[id]
	if !ok {
		return fmt.Errorf("anchor %s was not assembled", id)
	}

	doc, err := r.parse()
	if err != nil {
		return err
	}
	node := findAnchor(doc, physical)
	if node == nil {
		return fmt.Errorf("anchor %s not found in assembled document", id)
	}
	return node.Decode(out)
}

// unknownExport names the unqualified form when name is alias.anchor and the
// root re-exports that anchor, since a re-export drops the alias.
func (r *Result) unknownExport(name string) error {
	q, err := directive.ParseQualifiedName(name)
	if err == nil && q.IsQualified() {
		want, err := r.Graph.Root.ResolveQualified(q)
		if id, ok := r.Graph.Root.Namespace.Lookup(q.Anchor); err == nil && ok && id == want {
			return fmt.Errorf("%q does not export %q; it is re-exported as %q", r.Path, name, q.Anchor)
		}
	}
	return fmt.Errorf("%q does not export %q", r.Path, name)
}

// parse parses the artifact text into its document node.
func (r *Result) parse() (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(r.Artifact.Text), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse assembled document %q: %w", r.Path, err)
	}
	return &doc, nil
}

// content returns the node holding the root document's content, or nil if
// the root document is empty.
func (r *Result) content() (*yaml.Node, error) {
	doc, err := r.parse()
	if err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	top := doc.Content[0]

	if r.Artifact.Layout == assembler.LayoutConcatenated {
		return top, nil
	}

	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("assembled document %q is not a mapping", r.Path)
	}
	for i := 0; i+1 < len(top.Content); i += 2 {
		if top.Content[i].Value == assembler.DocumentKey {
			value := top.Content[i+1]
			if value.Tag == "!!null" && value.Value == "" {
				return nil, nil
			}
			return value, nil
		}
	}
	return nil, fmt.Errorf("assembled document %q has no %q key", r.Path, assembler.DocumentKey)
}

// findAnchor returns the last node defining anchor in document order,
// matching YAML's rule that a redefined anchor shadows earlier ones.
func findAnchor(node *yaml.Node, anchor string) *yaml.Node {
	var found *yaml.Node
	var walk func(n *yaml.Node)
	walk = func(n *yaml.Node) {
		if n.Kind == yaml.AliasNode {
			return
		}
		if n.Anchor == anchor {
			found = n
		}
		for _, child := range n.Content {
			walk(child)
		}
	}
	walk(node)
	return found
}

package assembler

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/superstrong/yaml-io/pkg/imports/directive"
	importErrors "github.com/superstrong/yaml-io/pkg/imports/errors"
	"github.com/superstrong/yaml-io/pkg/imports/resolver"
)

// Artifact is the assembled text of a resolved graph.
type Artifact struct {
	// Text is the YAML text to parse
	Text string

	// Layout is the layout Text was assembled with
	Layout Layout

	// Documents are the canonical paths in emission order; the root is last
	Documents []string

	// Anchors maps every anchor identity to its physical name in Text
	Anchors map[resolver.AnchorID]string
}

// Renamed returns the identities whose physical name differs from their
// local name, sorted by identity.
func (a *Artifact) Renamed() []resolver.AnchorID {
	var ids []resolver.AnchorID
	for id, physical := range a.Anchors {
		if id.Name != physical {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}

// Assembler builds artifacts from resolved graphs.
type Assembler struct {
	layout Layout
	logger *slog.Logger
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithLayout sets the output layout. The default is LayoutWrapped.
func WithLayout(layout Layout) Option {
	return func(a *Assembler) {
		a.layout = layout
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assembler) {
		a.logger = logger
	}
}

// New creates an assembler.
func New(opts ...Option) *Assembler {
	a := &Assembler{
		layout: LayoutWrapped,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Layout returns the configured layout.
func (a *Assembler) Layout() Layout {
	return a.layout
}

// Assemble rewrites every document of g and combines them into one text.
// It sets ResolvedBody on every node of g.
func (a *Assembler) Assemble(g *resolver.Graph) (*Artifact, error) {
	if g == nil || g.Root == nil || len(g.Order) == 0 {
		return nil, fmt.Errorf("cannot assemble an empty import graph")
	}
	if g.Order[len(g.Order)-1] != g.Root {
		return nil, fmt.Errorf("import graph order does not end with the root document %q", g.Root.Path)
	}

	names := newNameTable()
	artifact := &Artifact{
		Layout:    a.layout,
		Documents: make([]string, 0, len(g.Order)),
	}

	for _, node := range g.Order {
		for _, name := range node.Document.LocalAnchors() {
			names.allocate(resolver.AnchorID{Path: node.Path, Name: name})
		}

		body, err := rewrite(node, names)
		if err != nil {
			return nil, err
		}
		node.ResolvedBody = body
		artifact.Documents = append(artifact.Documents, node.Path)
	}
	artifact.Anchors = names.physical

	switch a.layout {
	case LayoutWrapped:
		artifact.Text = wrap(g)
	case LayoutConcatenated:
		artifact.Text = concatenate(g)
	default:
		return nil, fmt.Errorf("unknown layout %q", a.layout)
	}

	a.logger.Debug("import graph assembled",
		"root", g.Root.Path,
		"layout", string(a.layout),
		"documents", len(artifact.Documents),
		"anchors", len(artifact.Anchors),
		"bytes", len(artifact.Text),
	)

	return artifact, nil
}

// nameTable allocates physical anchor names that are unique across the
// assembled text.
type nameTable struct {
	taken    map[string]bool
	physical map[resolver.AnchorID]string
}

func newNameTable() *nameTable {
	return &nameTable{
		taken:    make(map[string]bool),
		physical: make(map[resolver.AnchorID]string),
	}
}

func (t *nameTable) allocate(id resolver.AnchorID) string {
	if name, ok := t.physical[id]; ok {
		return name
	}
	name := id.Name
	for n := 1; t.taken[name]; n++ {
		name = id.Name + "_" + strconv.Itoa(n)
	}
	t.taken[name] = true
	t.physical[id] = name
	return name
}

// edit replaces Body[offset:offset+length] with text.
type edit struct {
	offset int
	length int
	text   string
}

func rewrite(node *resolver.Node, names *nameTable) (string, error) {
	doc := node.Document
	edits := make([]edit, 0, len(doc.Anchors)+len(doc.References))

	for _, anchor := range doc.Anchors {
		physical := names.physical[resolver.AnchorID{Path: node.Path, Name: anchor.Name}]
		edits = append(edits, edit{offset: anchor.Offset, length: len(anchor.Name), text: physical})
	}

	for _, ref := range doc.References {
		physical, err := bind(node, ref, names)
		if err != nil {
			return "", err
		}
		edits = append(edits, edit{offset: ref.Offset, length: len(ref.Raw), text: physical})
	}

	sort.Slice(edits, func(i, j int) bool {
		return edits[i].offset < edits[j].offset
	})

	var b strings.Builder
	b.Grow(len(doc.Body))
	last := 0
	for _, e := range edits {
		b.WriteString(doc.Body[last:e.offset])
		b.WriteString(e.text)
		last = e.offset + e.length
	}
	b.WriteString(doc.Body[last:])
	return b.String(), nil
}

// bind returns the physical name a reference is rewritten to.
func bind(node *resolver.Node, ref directive.Reference, names *nameTable) (string, error) {
	unresolved := func(message string) error {
		return &importErrors.UnresolvedAliasError{
			FilePath:  node.Path,
			Line:      ref.Line,
			Reference: ref.Raw,
			Message:   message,
		}
	}

	q, err := ref.Name()
	if err != nil {
		return "", unresolved(err.Error())
	}

	id, err := node.ResolveQualified(q)
	if err != nil {
		return "", unresolved(err.Error())
	}

	if !q.IsQualified() && !definedBefore(node.Document, q.Anchor, ref.Offset) {
		return "", unresolved(fmt.Sprintf("anchor %q is defined after the alias", q.Anchor))
	}

	physical, ok := names.physical[id]
	if !ok {
		return "", unresolved(fmt.Sprintf("anchor %s has not been emitted", id))
	}
	return physical, nil
}

func definedBefore(doc *directive.Document, name string, offset int) bool {
	for _, anchor := range doc.Anchors {
		if anchor.Name == name && anchor.Offset < offset {
			return true
		}
	}
	return false
}

func wrap(g *resolver.Graph) string {
	var b strings.Builder

	if len(g.Order) > 1 {
		b.WriteString(ImportsKey + ":\n")
		for _, node := range g.Order[:len(g.Order)-1] {
			b.WriteString("  - # " + node.Path + "\n")
			b.WriteString(indent(ensureNewline(node.ResolvedBody), 4))
		}
	}

	b.WriteString(DocumentKey + ":\n")
	b.WriteString(indent(ensureNewline(g.Root.ResolvedBody), 2))
	return b.String()
}

func concatenate(g *resolver.Graph) string {
	var b strings.Builder
	for _, node := range g.Order {
		b.WriteString(ensureNewline(node.ResolvedBody))
	}
	return b.String()
}

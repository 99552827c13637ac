package directive

// Import is a parsed #!import directive.
type Import struct {
	// Path is the import target as written, relative to the importing document
	Path string

	// Alias is the namespace alias under which the target's exports are visible
	Alias string

	// Line is the 1-indexed line of the directive
	Line int
}

// Export is one entry of an #!export directive.
type Export struct {
	Name QualifiedName
	Line int
}

// Anchor is an anchor definition (&name) in a document body.
type Anchor struct {
	Name string

	// Offset is the byte offset of the name (after '&') in Document.Body
	Offset int

	// Line is the 1-indexed line in the original document
	Line int
}

// Reference is an alias (*name or *alias.name) in a document body.
type Reference struct {
	// Raw is the alias name as written, without the leading '*'
	Raw string

	// Offset is the byte offset of Raw in Document.Body
	Offset int

	// Line is the 1-indexed line in the original document
	Line int
}

// Name parses the reference as a qualified name.
func (r Reference) Name() (QualifiedName, error) {
	return ParseQualifiedName(r.Raw)
}

// Document is the scan result for one YAML document.
type Document struct {
	// Path identifies the document in errors
	Path string

	// Imports are the #!import directives in document order
	Imports []Import

	// Exports are the #!export entries in document order
	Exports []Export

	// Anchors are the anchor definitions in document order.
	// A name defined twice appears twice.
	Anchors []Anchor

	// References are the aliases in document order
	References []Reference

	// Body is the document text with directive lines removed
	Body string
}

// LocalAnchors returns the distinct names of anchors defined in the
// document, in order of first definition.
func (d *Document) LocalAnchors() []string {
	seen := make(map[string]bool, len(d.Anchors))
	names := make([]string, 0, len(d.Anchors))
	for _, a := range d.Anchors {
		if seen[a.Name] {
			continue
		}
		seen[a.Name] = true
		names = append(names, a.Name)
	}
	return names
}

// DefinesAnchor reports whether the document defines an anchor named name.
func (d *Document) DefinesAnchor(name string) bool {
	for _, a := range d.Anchors {
		if a.Name == name {
			return true
		}
	}
	return false
}

// Import returns the import declared under alias.
func (d *Document) Import(alias string) (Import, bool) {
	for _, imp := range d.Imports {
		if imp.Alias == alias {
			return imp, true
		}
	}
	return Import{}, false
}

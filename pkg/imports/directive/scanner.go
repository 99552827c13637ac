package directive

import (
	"fmt"
	"regexp"
	"strings"

	importErrors "github.com/superstrong/yaml-io/pkg/imports/errors"
)

const (
	directivePrefix = "#!"
	keywordImport   = "import"
	keywordExport   = "export"
)

var importPattern = regexp.MustCompile(`^#!import\s+(\S.*?)\s+as\s+(\S+)\s*$`)

// scanner holds the per-document state of one Scan call.
type scanner struct {
	path string
	doc  *Document
	lx   *lexer
	body strings.Builder

	// aliases maps each declared import alias to its directive line
	aliases map[string]int

	seenContent bool
	seenMarker  bool
	ended       bool
}

// Scan extracts directives, anchors and aliases from raw and returns the
// document with directive lines removed from its body. Malformed directives
// fail with *errors.DirectiveSyntaxError.
func Scan(path string, raw []byte) (*Document, error) {
	text := strings.ReplaceAll(string(raw), "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	s := &scanner{
		path:    path,
		doc:     &Document{Path: path},
		lx:      newLexer(),
		aliases: make(map[string]int),
	}

	for i, line := range lines {
		if err := s.scanLine(i+1, line); err != nil {
			return nil, err
		}
	}

	s.doc.Body = s.body.String()
	return s.doc, nil
}

func (s *scanner) scanLine(lineNo int, line string) error {
	// Block scalar content is opaque text.
	if s.lx.inBlockScalar(line) {
		s.keep(line)
		return nil
	}

	if !s.lx.inQuotedScalar() && s.lx.flowDepth == 0 {
		if keyword, ok := directiveKeyword(line); ok {
			switch keyword {
			case keywordImport:
				return s.parseImport(lineNo, line)
			case keywordExport:
				return s.parseExport(lineNo, line)
			}
		}

		handled, err := s.documentMarker(lineNo, line)
		if err != nil || handled {
			return err
		}
	}

	if s.ended && !isBlank(line) && !isComment(line) {
		return s.syntaxError(lineNo, line, "content after document end marker '...'")
	}

	base := s.body.Len()
	tokens, err := s.lx.scanLine(line)
	if err != nil {
		return s.syntaxError(lineNo, line, err.Error())
	}
	for _, tok := range tokens {
		switch tok.kind {
		case tokenAnchor:
			s.doc.Anchors = append(s.doc.Anchors, Anchor{Name: tok.name, Offset: base + tok.col, Line: lineNo})
		case tokenAlias:
			s.doc.References = append(s.doc.References, Reference{Raw: tok.name, Offset: base + tok.col, Line: lineNo})
		}
	}

	s.keep(line)
	return nil
}

// documentMarker strips YAML directives (%YAML, %TAG), a single leading
// "---" and the "..." end marker. Any further "---" starts a second
// document, which cannot be imported.
func (s *scanner) documentMarker(lineNo int, line string) (bool, error) {
	switch {
	case strings.HasPrefix(line, "%") && !s.seenContent && !s.seenMarker:
		return true, nil

	case line == "---" || strings.HasPrefix(line, "--- ") || strings.HasPrefix(line, "---\t"):
		if s.seenMarker || s.seenContent || s.ended {
			return true, s.syntaxError(lineNo, line, "multiple YAML documents in one file are not supported")
		}
		s.seenMarker = true
		if rest := strings.TrimLeft(line[3:], " \t"); rest != "" {
			// "--- value": the root node starts on the marker line.
			return true, s.scanLine(lineNo, rest)
		}
		return true, nil

	case line == "..." || strings.HasPrefix(line, "... ") || strings.HasPrefix(line, "...\t"):
		s.ended = true
		return true, nil
	}

	return false, nil
}

func (s *scanner) parseImport(lineNo int, line string) error {
	m := importPattern.FindStringSubmatch(stripComment(line))
	if m == nil {
		return s.syntaxError(lineNo, line, "expected '#!import <path> as <alias>'")
	}

	path, alias := m[1], m[2]
	if !IsIdentifier(alias) {
		return s.syntaxError(lineNo, line, fmt.Sprintf("import alias %q is not a valid identifier", alias))
	}
	if first, dup := s.aliases[alias]; dup {
		return s.syntaxError(lineNo, line, fmt.Sprintf("duplicate import alias %q (first declared at line %d)", alias, first))
	}

	s.aliases[alias] = lineNo
	s.doc.Imports = append(s.doc.Imports, Import{Path: path, Alias: alias, Line: lineNo})
	return nil
}

func (s *scanner) parseExport(lineNo int, line string) error {
	rest := strings.TrimSpace(stripComment(line[len(directivePrefix+keywordExport):]))
	if rest == "" {
		return s.syntaxError(lineNo, line, "expected '#!export <name>[, <name>...]'")
	}

	for _, entry := range strings.Split(rest, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			return s.syntaxError(lineNo, line, "empty export entry")
		}
		name, err := ParseQualifiedName(entry)
		if err != nil {
			return s.syntaxError(lineNo, line, err.Error())
		}
		s.doc.Exports = append(s.doc.Exports, Export{Name: name, Line: lineNo})
	}
	return nil
}

func (s *scanner) keep(line string) {
	if !isBlank(line) && !isComment(line) {
		s.seenContent = true
	}
	s.body.WriteString(line)
	s.body.WriteByte('\n')
}

func (s *scanner) syntaxError(lineNo int, line, message string) error {
	return &importErrors.DirectiveSyntaxError{
		FilePath: s.path,
		Line:     lineNo,
		Text:     line,
		Message:  message,
	}
}

// directiveKeyword returns the keyword of a "#!keyword ..." line when it is
// one of the directives this package understands.
func directiveKeyword(line string) (string, bool) {
	if !strings.HasPrefix(line, directivePrefix) {
		return "", false
	}
	rest := line[len(directivePrefix):]
	end := strings.IndexAny(rest, " \t")
	if end < 0 {
		end = len(rest)
	}
	switch keyword := rest[:end]; keyword {
	case keywordImport, keywordExport:
		return keyword, true
	}
	return "", false
}

// stripComment cuts a trailing "# ..." comment from a directive line. As in
// YAML, the '#' must follow whitespace.
func stripComment(line string) string {
	for i := 1; i < len(line); i++ {
		if line[i] == '#' && (line[i-1] == ' ' || line[i-1] == '\t') {
			return line[:i]
		}
	}
	return line
}

func isComment(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), "#")
}

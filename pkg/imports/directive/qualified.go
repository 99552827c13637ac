package directive

import (
	"fmt"
	"strings"
)

// QualifiedName is a name of the form alias.anchor. Alias is empty when the
// name refers to an anchor of the document itself.
type QualifiedName struct {
	Alias  string
	Anchor string
}

// IsQualified reports whether the name carries an import alias.
func (q QualifiedName) IsQualified() bool {
	return q.Alias != ""
}

// String returns the name as written in a document.
func (q QualifiedName) String() string {
	if q.Alias == "" {
		return q.Anchor
	}
	return q.Alias + "." + q.Anchor
}

// ParseQualifiedName parses "anchor" or "alias.anchor".
func ParseQualifiedName(s string) (QualifiedName, error) {
	switch strings.Count(s, ".") {
	case 0:
		if !IsAnchorName(s) {
			return QualifiedName{}, fmt.Errorf("invalid anchor name %q", s)
		}
		return QualifiedName{Anchor: s}, nil
	case 1:
		alias, anchor, _ := strings.Cut(s, ".")
		if !IsIdentifier(alias) {
			return QualifiedName{}, fmt.Errorf("invalid import alias %q in %q", alias, s)
		}
		if !IsAnchorName(anchor) {
			return QualifiedName{}, fmt.Errorf("invalid anchor name %q in %q", anchor, s)
		}
		return QualifiedName{Alias: alias, Anchor: anchor}, nil
	default:
		return QualifiedName{}, fmt.Errorf("only one period allowed in qualified name %q", s)
	}
}

// IsIdentifier reports whether s is a valid import alias.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' || isLetter(c) || (i > 0 && isDigit(c)) {
			continue
		}
		return false
	}
	return true
}

// IsAnchorName reports whether s is a valid anchor name: a letter, digit or
// underscore followed by letters, digits, underscores or hyphens.
func IsAnchorName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isLetter(c) || isDigit(c) || c == '_' || (i > 0 && c == '-') {
			continue
		}
		return false
	}
	return true
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isNameChar reports whether c may appear in an anchor or alias name as
// scanned from a document. Periods are accepted so that qualified aliases
// are read whole; anchor definitions reject them later.
func isNameChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_' || c == '-' || c == '.'
}

package assembler

import (
	"fmt"
	"strings"
)

// Layout selects how document bodies are combined.
type Layout string

const (
	// LayoutWrapped nests imported bodies under an "imports" sequence and the
	// root body under "document".
	LayoutWrapped Layout = "wrapped"

	// LayoutConcatenated joins the bodies one after another.
	LayoutConcatenated Layout = "concatenated"
)

// DocumentKey and ImportsKey are the top-level keys of the wrapped layout.
const (
	DocumentKey = "document"
	ImportsKey  = "imports"
)

// ParseLayout parses a layout name. The empty string selects LayoutWrapped.
func ParseLayout(s string) (Layout, error) {
	switch Layout(strings.ToLower(strings.TrimSpace(s))) {
	case "", LayoutWrapped:
		return LayoutWrapped, nil
	case LayoutConcatenated:
		return LayoutConcatenated, nil
	default:
		return "", fmt.Errorf("unknown layout %q (must be %q or %q)", s, LayoutWrapped, LayoutConcatenated)
	}
}

func (l Layout) String() string {
	return string(l)
}

// indent prefixes every non-empty line of body with n spaces.
func indent(body string, n int) string {
	if body == "" {
		return ""
	}
	prefix := strings.Repeat(" ", n)

	var b strings.Builder
	b.Grow(len(body) + n*strings.Count(body, "\n"))
	for _, line := range strings.SplitAfter(body, "\n") {
		if line == "" {
			continue
		}
		if line != "\n" {
			b.WriteString(prefix)
		}
		b.WriteString(line)
	}
	return b.String()
}

func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

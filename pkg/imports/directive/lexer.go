package directive

import "errors"

type tokenKind int

const (
	tokenAnchor tokenKind = iota
	tokenAlias
)

// token is an anchor or alias found on one line. Col is the byte column of
// the name, just after the '&' or '*' indicator.
type token struct {
	kind tokenKind
	name string
	col  int
}

var errPeriodInAnchor = errors.New("periods are not allowed in anchor names")

// lexer tracks the YAML context that spans lines: open quoted scalars, block
// scalar bodies and flow collection nesting. It recognizes only as much of
// YAML as is needed to tell node properties apart from scalar content.
type lexer struct {
	// quote is the delimiter of a quoted scalar left open at end of line
	quote byte

	// blockIndent is the indentation of the node owning an open block
	// scalar; lines indented deeper belong to the scalar. -1 when closed.
	blockIndent int

	// flowDepth is the nesting depth of [ ] and { } collections
	flowDepth int
}

func newLexer() *lexer {
	return &lexer{blockIndent: -1}
}

// inBlockScalar reports whether line is content of an open block scalar.
// It closes the scalar when line is indented at or above its owner.
func (l *lexer) inBlockScalar(line string) bool {
	if l.blockIndent < 0 {
		return false
	}
	if isBlank(line) || indentation(line) > l.blockIndent {
		return true
	}
	l.blockIndent = -1
	return false
}

// inQuotedScalar reports whether the previous line left a quoted scalar open.
func (l *lexer) inQuotedScalar() bool {
	return l.quote != 0
}

// scanLine returns the anchors and aliases on line and updates the lexer
// state for the next line.
func (l *lexer) scanLine(line string) ([]token, error) {
	var tokens []token

	i := 0
	nodeStart := true
	entryCol := indentation(line)
	pendingEntry := false

	// mark records where a node following a "- " or "? " indicator starts;
	// nested mapping keys on that line are indented from there.
	mark := func(col int) {
		if pendingEntry {
			entryCol = col
			pendingEntry = false
		}
	}

	if l.quote != 0 {
		i = l.skipQuoted(line, 0)
		nodeStart = false
	}

	for i < len(line) {
		c := line[i]
		switch {
		case c == ' ' || c == '\t':
			i++

		case c == '#' && (i == 0 || line[i-1] == ' ' || line[i-1] == '\t'):
			return tokens, nil

		case (c == '\'' || c == '"') && nodeStart:
			mark(i)
			l.quote = c
			i = l.skipQuoted(line, i+1)
			nodeStart = false

		case (c == '&' || c == '*') && nodeStart:
			mark(i)
			j := i + 1
			for j < len(line) && isNameChar(line[j]) {
				j++
			}
			name := line[i+1 : j]
			if name == "" {
				nodeStart = false
				i++
				continue
			}
			if c == '&' {
				for k := 0; k < len(name); k++ {
					if name[k] == '.' {
						return nil, errPeriodInAnchor
					}
				}
				tokens = append(tokens, token{kind: tokenAnchor, name: name, col: i + 1})
			} else {
				tokens = append(tokens, token{kind: tokenAlias, name: name, col: i + 1})
				nodeStart = false
			}
			i = j

		case c == '!' && nodeStart:
			mark(i)
			for i < len(line) && !isBlankAt(line, i) && !(l.flowDepth > 0 && isFlowIndicator(line[i])) {
				i++
			}

		case (c == '-' || c == '?') && nodeStart && isBlankAt(line, i+1):
			entryCol = i
			pendingEntry = true
			i++

		case c == ':' && (isBlankAt(line, i+1) || (l.flowDepth > 0 && i+1 < len(line) && isFlowIndicator(line[i+1]))):
			nodeStart = true
			i++

		case (c == '[' || c == '{') && (nodeStart || l.flowDepth > 0):
			mark(i)
			l.flowDepth++
			nodeStart = true
			i++

		case (c == ']' || c == '}') && l.flowDepth > 0:
			l.flowDepth--
			nodeStart = false
			i++

		case c == ',' && l.flowDepth > 0:
			nodeStart = true
			i++

		case (c == '|' || c == '>') && nodeStart && l.flowDepth == 0:
			l.blockIndent = entryCol
			return tokens, nil

		default:
			mark(i)
			nodeStart = false
			i++
		}
	}

	return tokens, nil
}

// skipQuoted advances past a quoted scalar starting at from (just after the
// opening quote, or at the start of a continuation line). It returns the
// index after the closing quote, or len(line) when the scalar stays open.
func (l *lexer) skipQuoted(line string, from int) int {
	for i := from; i < len(line); i++ {
		switch {
		case l.quote == '"' && line[i] == '\\':
			i++
		case l.quote == '\'' && line[i] == '\'' && i+1 < len(line) && line[i+1] == '\'':
			i++
		case line[i] == l.quote:
			l.quote = 0
			return i + 1
		}
	}
	return len(line)
}

func isBlankAt(line string, i int) bool {
	return i >= len(line) || line[i] == ' ' || line[i] == '\t'
}

func isFlowIndicator(c byte) bool {
	return c == ',' || c == '[' || c == ']' || c == '{' || c == '}'
}

func isBlank(line string) bool {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return false
		}
	}
	return true
}

func indentation(line string) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n
}

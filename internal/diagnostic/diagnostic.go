// Package diagnostic formats problems found while rewriting a source file.
// The rewriter raises one for a queued hoist request that carries no
// declaration; an unresolved type reference is emitted as `any` without a
// diagnostic, and malformed project configuration is reported as a plain
// warning string by internal/reflectmode. It renders source context and a
// caret pointing at the offending position, adapted from the teacher compiler's
// error formatter to key off hostapi.Position instead of the host lexer's
// own position type.
package diagnostic

import (
	"fmt"
	"strings"

	"typegen/pkg/hostapi"
)

// Diagnostic is a single reportable problem encountered while transforming
// one file.
type Diagnostic struct {
	Message string
	Source  string
	File    string
	Pos     hostapi.Position
}

// New creates a Diagnostic at pos.
func New(pos hostapi.Position, file, source, message string) *Diagnostic {
	return &Diagnostic{Message: message, Source: source, File: file, Pos: pos}
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	return d.Format(false)
}

// Format renders the diagnostic with a source line and caret. When color is
// true, the message and caret are wrapped in ANSI escapes.
func (d *Diagnostic) Format(color bool) string {
	var sb strings.Builder

	if d.File != "" {
		fmt.Fprintf(&sb, "%s:%d:%d: ", d.File, d.Pos.Line, d.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "%d:%d: ", d.Pos.Line, d.Pos.Column)
	}
	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(d.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	if line := d.sourceLine(d.Pos.Line); line != "" {
		prefix := fmt.Sprintf("\n%4d | ", d.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)-2+d.Pos.Column))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
	}

	return sb.String()
}

func (d *Diagnostic) sourceLine(lineNum int) string {
	if d.Source == "" {
		return ""
	}
	lines := strings.Split(d.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// List collects diagnostics raised over the course of transforming one or
// more files. Collection continues past the first error — callers decide
// whether any Diagnostic is fatal.
type List struct {
	items []*Diagnostic
}

// Add appends d to the list.
func (l *List) Add(d *Diagnostic) {
	l.items = append(l.items, d)
}

// Empty reports whether no diagnostics were collected.
func (l *List) Empty() bool {
	return len(l.items) == 0
}

// All returns the collected diagnostics in the order they were added.
func (l *List) All() []*Diagnostic {
	return l.items
}

// Format renders every diagnostic in the list, separated by blank lines.
func (l *List) Format(color bool) string {
	parts := make([]string, len(l.items))
	for i, d := range l.items {
		parts[i] = d.Format(color)
	}
	return strings.Join(parts, "\n\n")
}

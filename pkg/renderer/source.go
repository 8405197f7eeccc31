package renderer

import (
	"fmt"
	"strings"
)

// AnnotationKind distinguishes user-visible problems from advisory notes.
type AnnotationKind string

const (
	// AnnotationIssue marks a user-visible problem in the emitted code, such
	// as a schema construct the target language cannot express.
	AnnotationIssue AnnotationKind = "issue"
	// AnnotationHover carries advisory text an editor may show on hover.
	AnnotationHover AnnotationKind = "hover"
)

// Span is a line range in the emitted artifact.
type Span struct {
	Start int
	End   int
}

// Annotation is a structured note attached to a span of the emitted source.
type Annotation struct {
	Span    Span
	Kind    AnnotationKind
	Message string
}

// Result is a rendered artifact: the emitted lines plus the annotations
// attached to them.
type Result struct {
	Lines       []string
	Annotations []Annotation
}

// BlankPolicy governs blank lines between items emitted by the ForEach
// helpers.
type BlankPolicy int

const (
	// BlankNone emits no separating blank lines.
	BlankNone BlankPolicy = iota
	// BlankBetweenAll separates items with blank lines and puts one around
	// the whole group.
	BlankBetweenAll
	// BlankInterposing separates items with blank lines but not around the
	// group.
	BlankInterposing
)

// Source accumulates emitted lines and their annotations. Rendering the same
// graph through the same language twice produces byte-identical output.
type Source struct {
	lines       []string
	indent      int
	annotations []Annotation
}

// Line emits one line at the current indentation.
func (s *Source) Line(parts ...string) {
	text := strings.Join(parts, "")
	if text == "" {
		s.lines = append(s.lines, "")
		return
	}
	s.lines = append(s.lines, strings.Repeat("\t", s.indent)+text)
}

// Linef emits one formatted line at the current indentation.
func (s *Source) Linef(format string, args ...any) {
	s.Line(fmt.Sprintf(format, args...))
}

// Blank emits an empty line.
func (s *Source) Blank() {
	s.lines = append(s.lines, "")
}

// Indented runs f with the indentation level raised by one.
func (s *Source) Indented(f func()) {
	s.indent++
	f()
	s.indent--
}

// Issue attaches a user-visible problem to the next emitted line.
func (s *Source) Issue(message string) {
	line := len(s.lines)
	s.annotations = append(s.annotations, Annotation{Span: Span{Start: line, End: line}, Kind: AnnotationIssue, Message: message})
}

// Hover attaches advisory text to the next emitted line.
func (s *Source) Hover(text string) {
	line := len(s.lines)
	s.annotations = append(s.annotations, Annotation{Span: Span{Start: line, End: line}, Kind: AnnotationHover, Message: text})
}

// Result returns the emitted artifact.
func (s *Source) Result() Result {
	return Result{
		Lines:       append([]string(nil), s.lines...),
		Annotations: append([]Annotation(nil), s.annotations...),
	}
}

// String returns the emitted lines joined with newlines, with a trailing
// newline.
func (r Result) String() string {
	if len(r.Lines) == 0 {
		return ""
	}
	return strings.Join(r.Lines, "\n") + "\n"
}

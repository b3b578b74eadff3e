package project

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownField is wrapped by DecodeError for keys that are not part of the schema.
	ErrUnknownField = errors.New("unknown field")

	// ErrDuplicateField is wrapped by DecodeError when a field is given twice,
	// either literally or through one of its alias spellings.
	ErrDuplicateField = errors.New("duplicate field")

	// ErrAttachConflict is wrapped by DecodeError when both an attach and a
	// detached spelling are present.
	ErrAttachConflict = errors.New("cannot set both 'attach' and 'detached' fields")

	// ErrNoTmuxCommand is wrapped by AssemblyError when tmux_command was never resolved.
	ErrNoTmuxCommand = errors.New("tmux command not set")
)

// DecodeError reports a malformed or conflicting project document.
type DecodeError struct {
	// Path is the file the document came from, if known.
	Path string
	// Field is the dotted location of the offending value, e.g. "windows[1].panes".
	Field string
	// Line is the 1-based line in the document, 0 when unknown.
	Line int
	Err  error
}

func (e *DecodeError) Error() string {
	var b strings.Builder
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	if e.Field != "" {
		b.WriteString(e.Field)
		b.WriteString(": ")
	}
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ValidationError reports a decoded project that is structurally fine but
// semantically inconsistent.
type ValidationError struct {
	Field string
	// Value is the offending value, kept for callers building their own messages.
	Value any
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return e.Field + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// AssemblyError reports a failure building the tmux command line.
type AssemblyError struct {
	Op  string
	Err error
}

func (e *AssemblyError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *AssemblyError) Unwrap() error { return e.Err }

// InvalidIdentifierError reports a name tmux cannot use as a session or window name.
type InvalidIdentifierError struct {
	Name   string
	Reason string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid tmux identifier %q: %s", e.Name, e.Reason)
}

// decodeErrorf builds a DecodeError positioned at n.
func decodeErrorf(n *yaml.Node, format string, args ...any) error {
	return &DecodeError{Line: n.Line, Err: fmt.Errorf(format, args...)}
}

// withField prefixes the Field of a DecodeError with field, so errors from
// nested values read like "windows[2].panes[0].root".
func withField(err error, field string) error {
	var de *DecodeError
	if !errors.As(err, &de) {
		return &DecodeError{Field: field, Err: err}
	}
	out := *de
	switch {
	case out.Field == "":
		out.Field = field
	case strings.HasPrefix(out.Field, "["):
		out.Field = field + out.Field
	default:
		out.Field = field + "." + out.Field
	}
	return &out
}

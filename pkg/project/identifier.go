package project

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ValidTmuxIdentifier reports whether name can be used as a tmux session or
// window name. tmux uses ':' and '.' to separate session, window and pane in
// target specifications, so names containing them cannot be addressed.
func ValidTmuxIdentifier(name string) error {
	invalid := func(reason string) error {
		return &InvalidIdentifierError{Name: name, Reason: reason}
	}

	switch {
	case name == "":
		return invalid("must not be empty")
	case strings.TrimSpace(name) == "":
		return invalid("must not be blank")
	case !utf8.ValidString(name):
		return invalid("must be valid UTF-8")
	}

	for _, r := range name {
		switch {
		case unicode.IsControl(r):
			return invalid("must not contain control characters")
		case r == ':' || r == '.':
			return invalid(fmt.Sprintf("must not contain %q", r))
		}
	}
	return nil
}

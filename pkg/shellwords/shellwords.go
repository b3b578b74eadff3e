// Package shellwords wraps POSIX shell word splitting and quoting for the
// places that compose tmux command lines.
package shellwords

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
)

// ErrEmptyCommand is returned by ParseCommand when the command has no words.
var ErrEmptyCommand = errors.New("empty command")

// Split tokenizes s the way a POSIX shell would (whitespace separated words,
// honoring single quotes, double quotes and backslash escapes).
// Unbalanced quotes and trailing escapes are errors.
func Split(s string) ([]string, error) {
	words, err := shellquote.Split(s)
	if err != nil {
		return nil, fmt.Errorf("split %q: %w", s, err)
	}
	return words, nil
}

// Quote renders s as a single shell word. Strings without shell
// metacharacters are returned unchanged; the empty string becomes ''.
// Words containing '#' are always single-quoted, since an unquoted word
// starting with '#' begins a shell comment.
func Quote(s string) string {
	if strings.ContainsRune(s, '#') {
		return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
	}
	return shellquote.Join(s)
}

// Join quotes every argument individually and joins them with single spaces.
func Join(args []string) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		parts = append(parts, Quote(a))
	}
	return strings.Join(parts, " ")
}

// ParseCommand splits a possibly multi-word command (e.g. "ssh host tmux")
// into a program and its leading arguments, then appends extra.
func ParseCommand(command string, extra []string) (string, []string, error) {
	words, err := Split(command)
	if err != nil {
		return "", nil, err
	}
	if len(words) == 0 {
		return "", nil, ErrEmptyCommand
	}

	args := make([]string, 0, len(words)-1+len(extra))
	args = append(args, words[1:]...)
	args = append(args, extra...)
	return words[0], args, nil
}

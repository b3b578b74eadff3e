package project

import (
	"strings"

	"tmux-project/pkg/logger"
	"tmux-project/pkg/shellwords"
)

// Invocation returns the program and argv that run tmux for this project
// with args appended. tmux_command may be a multi-word command (e.g.
// "ssh devbox tmux"); its first word is the program and the rest lead argv,
// followed by "-L <socket>", the words of tmux_options, then args.
func (p Project) Invocation(args []string) (string, []string, error) {
	if p.TmuxCommand == nil {
		return "", nil, &AssemblyError{Op: "tmux_command", Err: ErrNoTmuxCommand}
	}

	var full []string
	if p.TmuxSocket != nil {
		full = append(full, "-L", *p.TmuxSocket)
	}
	if p.TmuxOptions != nil {
		opts, err := shellwords.Split(*p.TmuxOptions)
		if err != nil {
			return "", nil, &AssemblyError{Op: "tmux_options", Err: err}
		}
		full = append(full, opts...)
	}
	full = append(full, args...)

	program, argv, err := shellwords.ParseCommand(*p.TmuxCommand, full)
	if err != nil {
		return "", nil, &AssemblyError{Op: "tmux_command", Err: err}
	}

	logger.ComponentLogger("project").Debug("assembled tmux invocation",
		"program", program,
		"args", len(argv))
	return program, argv, nil
}

// InvocationForTemplate renders Invocation(nil) as one shell line with every
// word quoted individually, for embedding in a generated launch script.
// Re-splitting the line with a POSIX shell yields the original argv.
func (p Project) InvocationForTemplate() (string, error) {
	program, argv, err := p.Invocation(nil)
	if err != nil {
		return "", err
	}

	words := make([]string, 0, len(argv)+1)
	words = append(words, shellwords.Quote(program))
	for _, a := range argv {
		words = append(words, shellwords.Quote(a))
	}
	return strings.Join(words, " "), nil
}

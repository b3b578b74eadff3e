// Package project defines the tmux project format: a declarative description
// of a session (windows, panes, lifecycle hooks, launch options) and the
// rules that turn a hand-written document into a resolved, validated
// Project.
//
// Lifecycle:
//   - Decode / LoadFile: parse a document; aliases and shapes are normalized.
//   - Prepare: fill in the session name and apply global configuration.
//   - Check: validate cross-field invariants.
//   - Invocation / InvocationForTemplate: derive the tmux command line.
//
// A Project is not modified after Check.
package project

import (
	"fmt"

	"tmux-project/pkg/config"
	"tmux-project/pkg/logger"
)

const (
	// DefaultTmuxCommand is used when neither the project nor the global
	// configuration names a tmux executable.
	DefaultTmuxCommand = "tmux"

	DefaultWindowBaseIndex uint = 1
	DefaultPaneBaseIndex   uint = 1
)

// Project is a fully resolved session description.
type Project struct {
	SessionName *string `yaml:"session_name,omitempty"`
	TmuxCommand *string `yaml:"tmux_command,omitempty"`
	// TmuxOptions is a shell-syntax string of extra global tmux flags.
	TmuxOptions *string `yaml:"tmux_options,omitempty"`
	TmuxSocket  *string `yaml:"tmux_socket,omitempty"`
	WorkingDir  *string `yaml:"working_dir,omitempty"`

	WindowBaseIndex uint          `yaml:"window_base_index"`
	PaneBaseIndex   uint          `yaml:"pane_base_index"`
	StartupWindow   StartupWindow `yaml:"startup_window,omitempty"`
	StartupPane     *uint         `yaml:"startup_pane,omitempty"`

	OnStart        []string `yaml:"on_start,omitempty"`
	OnFirstStart   []string `yaml:"on_first_start,omitempty"`
	OnRestart      []string `yaml:"on_restart,omitempty"`
	OnExit         []string `yaml:"on_exit,omitempty"`
	OnStop         []string `yaml:"on_stop,omitempty"`
	OnCreate       []string `yaml:"on_create,omitempty"`
	PostCreate     []string `yaml:"post_create,omitempty"`
	OnPaneCreate   []string `yaml:"on_pane_create,omitempty"`
	PostPaneCreate []string `yaml:"post_pane_create,omitempty"`
	PaneCommands   []string `yaml:"pane_commands,omitempty"`

	Attach   bool     `yaml:"attach"`
	Template Template `yaml:"template"`
	Windows  []Window `yaml:"windows"`
}

// Default returns the project used when no document is given.
func Default() Project {
	return Project{
		WindowBaseIndex: DefaultWindowBaseIndex,
		PaneBaseIndex:   DefaultPaneBaseIndex,
		Attach:          true,
		Windows:         defaultWindows(),
	}
}

// Prepare returns a copy of p completed with values only known after
// decoding: the session name falls back to projectName, forceAttach (if
// non-nil) overrides Attach, and cfg.TmuxCommand (if set) overrides
// TmuxCommand, which otherwise defaults to DefaultTmuxCommand.
func (p Project) Prepare(cfg config.Config, projectName string, forceAttach *bool) Project {
	out := p

	if out.SessionName == nil {
		name := projectName
		out.SessionName = &name
	}

	if forceAttach != nil {
		out.Attach = *forceAttach
	}

	switch {
	case cfg.TmuxCommand != "":
		cmd := cfg.TmuxCommand
		out.TmuxCommand = &cmd
	case out.TmuxCommand == nil:
		cmd := DefaultTmuxCommand
		out.TmuxCommand = &cmd
	}

	logger.ComponentLogger("project").Debug("prepared project",
		"session", *out.SessionName,
		"tmux_command", *out.TmuxCommand,
		"attach", out.Attach)
	return out
}

// Check validates p, returning the first failure as a *ValidationError.
// Order: session name, startup window, working directory, then each window.
func (p Project) Check() error {
	if p.SessionName != nil {
		if err := ValidTmuxIdentifier(*p.SessionName); err != nil {
			return &ValidationError{Field: "session_name", Value: *p.SessionName, Err: err}
		}
	}

	if err := p.checkStartupWindow(); err != nil {
		return err
	}

	if p.WorkingDir != nil {
		if err := checkWorkingDir(*p.WorkingDir); err != nil {
			return err
		}
	}

	for i, w := range p.Windows {
		if err := w.Check(); err != nil {
			return &ValidationError{Field: fmt.Sprintf("windows[%d]", i), Err: err}
		}
	}
	return nil
}

func (p Project) checkStartupWindow() error {
	if index, ok := p.StartupWindow.Index(); ok {
		if index < p.WindowBaseIndex || index-p.WindowBaseIndex >= uint(len(p.Windows)) {
			return &ValidationError{
				Field: "startup_window",
				Value: index,
				Err:   fmt.Errorf("there is no window with index %d", index),
			}
		}
	}

	if name, ok := p.StartupWindow.Name(); ok {
		for _, w := range p.Windows {
			if w.Name != nil && *w.Name == name {
				return nil
			}
		}
		return &ValidationError{
			Field: "startup_window",
			Value: name,
			Err:   fmt.Errorf("there is no window with name %q", name),
		}
	}
	return nil
}

package project

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Window describes one tmux window of a project.
type Window struct {
	Name       *string `yaml:"name,omitempty"`
	Layout     *string `yaml:"layout,omitempty"`
	WorkingDir *string `yaml:"working_dir,omitempty"`

	OnCreate       []string `yaml:"on_create,omitempty"`
	PostCreate     []string `yaml:"post_create,omitempty"`
	OnPaneCreate   []string `yaml:"on_pane_create,omitempty"`
	PostPaneCreate []string `yaml:"post_pane_create,omitempty"`
	PaneCommands   []string `yaml:"pane_commands,omitempty"`

	Panes []Pane `yaml:"panes,omitempty"`
}

// Pane describes one pane of a window.
type Pane struct {
	WorkingDir *string  `yaml:"working_dir,omitempty"`
	Commands   []string `yaml:"commands,omitempty"`
}

// Check validates the window and its panes, stopping at the first failure.
func (w Window) Check() error {
	if w.Name != nil {
		if err := ValidTmuxIdentifier(*w.Name); err != nil {
			return &ValidationError{Field: "name", Value: *w.Name, Err: err}
		}
	}
	if w.Layout != nil && strings.TrimSpace(*w.Layout) == "" {
		return &ValidationError{Field: "layout", Value: *w.Layout, Err: errors.New("must not be blank")}
	}
	if w.WorkingDir != nil {
		if err := checkWorkingDir(*w.WorkingDir); err != nil {
			return err
		}
	}
	for i, p := range w.Panes {
		if err := p.Check(); err != nil {
			return &ValidationError{Field: fmt.Sprintf("panes[%d]", i), Err: err}
		}
	}
	return nil
}

// Check validates the pane's working directory, if set.
func (p Pane) Check() error {
	if p.WorkingDir != nil {
		return checkWorkingDir(*p.WorkingDir)
	}
	return nil
}

func defaultWindows() []Window {
	return []Window{{}}
}

// decodeWindows accepts a single window mapping or a list of them. Null and
// an empty list yield the single default window, so a project always has at
// least one window.
func decodeWindows(n *yaml.Node) ([]Window, error) {
	n = resolve(n)
	switch {
	case isNull(n):
		return defaultWindows(), nil
	case n.Kind == yaml.MappingNode:
		w, err := decodeWindow(n)
		if err != nil {
			return nil, err
		}
		return []Window{w}, nil
	case n.Kind == yaml.SequenceNode:
		if len(n.Content) == 0 {
			return defaultWindows(), nil
		}
		windows := make([]Window, 0, len(n.Content))
		for i, c := range n.Content {
			w, err := decodeWindow(c)
			if err != nil {
				return nil, withField(err, fmt.Sprintf("[%d]", i))
			}
			windows = append(windows, w)
		}
		return windows, nil
	default:
		return nil, decodeErrorf(n, "expected a window or a list of windows, got %s", describe(n))
	}
}

func decodeWindow(n *yaml.Node) (Window, error) {
	var w Window
	if isNull(n) {
		return w, nil
	}
	if err := windowFields.decode(&w, n); err != nil {
		return Window{}, err
	}
	return w, nil
}

var windowFields = newFieldTable(map[string]fieldSpec[Window]{
	"name": {decode: func(w *Window, n *yaml.Node) (err error) {
		w.Name, err = decodeOptionalString(n)
		return err
	}},
	"layout": {decode: func(w *Window, n *yaml.Node) (err error) {
		w.Layout, err = decodeOptionalString(n)
		return err
	}},
	"working_dir": {aliases: []string{"root"}, decode: func(w *Window, n *yaml.Node) (err error) {
		w.WorkingDir, err = decodeWorkingDir(n)
		return err
	}},
	"on_create":        {decode: windowCommands(func(w *Window) *[]string { return &w.OnCreate })},
	"post_create":      {decode: windowCommands(func(w *Window) *[]string { return &w.PostCreate })},
	"on_pane_create":   {decode: windowCommands(func(w *Window) *[]string { return &w.OnPaneCreate })},
	"post_pane_create": {decode: windowCommands(func(w *Window) *[]string { return &w.PostPaneCreate })},
	"pane_commands":    {aliases: []string{"pre", "pane_command"}, decode: windowCommands(func(w *Window) *[]string { return &w.PaneCommands })},
	"panes": {aliases: []string{"pane"}, decode: func(w *Window, n *yaml.Node) (err error) {
		w.Panes, err = decodePanes(n)
		return err
	}},
})

func windowCommands(field func(*Window) *[]string) func(*Window, *yaml.Node) error {
	return func(w *Window, n *yaml.Node) error {
		cmds, err := decodeCommandList(n)
		if err != nil {
			return err
		}
		*field(w) = cmds
		return nil
	}
}

// decodePanes accepts a single pane or a list of panes. A list of strings is
// one pane per string.
func decodePanes(n *yaml.Node) ([]Pane, error) {
	n = resolve(n)
	switch {
	case isNull(n):
		return nil, nil
	case n.Kind == yaml.SequenceNode:
		panes := make([]Pane, 0, len(n.Content))
		for i, c := range n.Content {
			p, err := decodePane(c)
			if err != nil {
				return nil, withField(err, fmt.Sprintf("[%d]", i))
			}
			panes = append(panes, p)
		}
		return panes, nil
	default:
		p, err := decodePane(n)
		if err != nil {
			return nil, err
		}
		return []Pane{p}, nil
	}
}

// decodePane accepts a command string, a list of commands, or a pane mapping.
func decodePane(n *yaml.Node) (Pane, error) {
	n = resolve(n)
	switch {
	case isNull(n):
		return Pane{}, nil
	case n.Kind == yaml.MappingNode:
		var p Pane
		if err := paneFields.decode(&p, n); err != nil {
			return Pane{}, err
		}
		return p, nil
	default:
		cmds, err := decodeCommandList(n)
		if err != nil {
			return Pane{}, err
		}
		return Pane{Commands: cmds}, nil
	}
}

var paneFields = newFieldTable(map[string]fieldSpec[Pane]{
	"working_dir": {aliases: []string{"root"}, decode: func(p *Pane, n *yaml.Node) (err error) {
		p.WorkingDir, err = decodeWorkingDir(n)
		return err
	}},
	"commands": {aliases: []string{"command"}, decode: func(p *Pane, n *yaml.Node) (err error) {
		p.Commands, err = decodeCommandList(n)
		return err
	}},
})

package project

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type startupWindowKind int

const (
	startupWindowUnset startupWindowKind = iota
	startupWindowIndex
	startupWindowName
)

// StartupWindow selects the window focused after the session is created,
// either by index or by name. The zero value is unset.
type StartupWindow struct {
	kind  startupWindowKind
	index uint
	name  string
}

// StartupWindowIndex selects a window by its index (relative to window_base_index).
func StartupWindowIndex(i uint) StartupWindow {
	return StartupWindow{kind: startupWindowIndex, index: i}
}

// StartupWindowName selects a window by name.
func StartupWindowName(name string) StartupWindow {
	return StartupWindow{kind: startupWindowName, name: name}
}

// IsSet reports whether a window was selected.
func (s StartupWindow) IsSet() bool { return s.kind != startupWindowUnset }

// IsZero lets yaml omitempty drop an unset selector.
func (s StartupWindow) IsZero() bool { return !s.IsSet() }

// Index returns the selected index and whether the window was selected by index.
func (s StartupWindow) Index() (uint, bool) {
	return s.index, s.kind == startupWindowIndex
}

// Name returns the selected name and whether the window was selected by name.
func (s StartupWindow) Name() (string, bool) {
	return s.name, s.kind == startupWindowName
}

// String returns the index or name, or "" when unset.
func (s StartupWindow) String() string {
	switch s.kind {
	case startupWindowIndex:
		return fmt.Sprintf("%d", s.index)
	case startupWindowName:
		return s.name
	default:
		return ""
	}
}

// MarshalYAML writes an index as an integer and a name as a string.
func (s StartupWindow) MarshalYAML() (any, error) {
	switch s.kind {
	case startupWindowIndex:
		return s.index, nil
	case startupWindowName:
		return s.name, nil
	default:
		return nil, nil
	}
}

// decodeStartupWindow maps a YAML integer to an index and anything else
// scalar to a name. A quoted "2" is a name.
func decodeStartupWindow(n *yaml.Node) (StartupWindow, error) {
	n = resolve(n)
	switch {
	case isNull(n):
		return StartupWindow{}, nil
	case n.Kind == yaml.ScalarNode && n.ShortTag() == "!!int":
		i, err := decodeUint(n)
		if err != nil {
			return StartupWindow{}, err
		}
		return StartupWindowIndex(i), nil
	case n.Kind == yaml.ScalarNode:
		return StartupWindowName(n.Value), nil
	default:
		return StartupWindow{}, decodeErrorf(n, "expected a window index or name, got %s", describe(n))
	}
}

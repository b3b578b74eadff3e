package project

import "gopkg.in/yaml.v3"

// commandListShape is the shape a hook field was written in.
type commandListShape int

const (
	commandListAbsent commandListShape = iota
	commandListSingle
	commandListMany
)

// commandList is the raw "string or list of strings" value of a hook field.
// It never leaves the decoder: commands() flattens it into the ordered
// sequence stored on Project and Window.
type commandList struct {
	shape commandListShape
	items []string
}

func parseCommandList(n *yaml.Node) (commandList, error) {
	n = resolve(n)
	switch {
	case isNull(n):
		return commandList{shape: commandListAbsent}, nil
	case n.Kind == yaml.ScalarNode:
		return commandList{shape: commandListSingle, items: []string{n.Value}}, nil
	case n.Kind == yaml.SequenceNode:
		items := make([]string, 0, len(n.Content))
		for _, c := range n.Content {
			c = resolve(c)
			if c.Kind != yaml.ScalarNode || isNull(c) {
				return commandList{}, decodeErrorf(c, "expected a command string, got %s", describe(c))
			}
			items = append(items, c.Value)
		}
		return commandList{shape: commandListMany, items: items}, nil
	default:
		return commandList{}, decodeErrorf(n, "expected a command string or a list of command strings, got %s", describe(n))
	}
}

func (c commandList) commands() []string {
	if c.shape == commandListAbsent || len(c.items) == 0 {
		return nil
	}
	return c.items
}

// decodeCommandList normalizes a hook field to an ordered command sequence.
// A bare string becomes a one-element sequence.
func decodeCommandList(n *yaml.Node) ([]string, error) {
	c, err := parseCommandList(n)
	if err != nil {
		return nil, err
	}
	return c.commands(), nil
}

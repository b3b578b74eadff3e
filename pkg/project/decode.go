package project

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"tmux-project/pkg/logger"
)

// Decode parses a YAML (or JSON) project document.
//
// An empty or null document yields Default(). Unknown keys are rejected, as
// is giving one field under two spellings (e.g. both "root" and
// "working_dir").
func Decode(data []byte) (Project, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Project{}, &DecodeError{Err: err}
	}
	return DecodeNode(&doc)
}

// DecodeNode is Decode for an already parsed document.
func DecodeNode(n *yaml.Node) (Project, error) {
	if n != nil && n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			n = nil
		} else {
			n = n.Content[0]
		}
	}
	n = resolve(n)
	if n == nil || n.Kind == 0 || isNull(n) {
		return Default(), nil
	}

	d := projectDraft{project: Default()}
	if err := projectFields.decode(&d, n); err != nil {
		return Project{}, err
	}

	attach, err := reconcileAttach(d.attach, d.detached)
	if err != nil {
		return Project{}, &DecodeError{Line: n.Line, Err: err}
	}
	d.project.Attach = attach

	logger.ComponentLogger("project").Debug("decoded project",
		"windows", len(d.project.Windows),
		"attach", d.project.Attach)
	return d.project, nil
}

// projectDraft collects a Project while decoding. The raw attach/detached
// spellings live here only; Project carries the reconciled Attach.
type projectDraft struct {
	project  Project
	attach   *bool
	detached *bool
}

func reconcileAttach(attach, detached *bool) (bool, error) {
	switch {
	case attach != nil && detached != nil:
		return false, ErrAttachConflict
	case attach != nil:
		return *attach, nil
	case detached != nil:
		return !*detached, nil
	default:
		return true, nil
	}
}

// projectFields is the top-level schema. Each entry lists the canonical key
// and the historical spellings accepted for it.
var projectFields = newFieldTable(map[string]fieldSpec[projectDraft]{
	"session_name": {aliases: []string{"name"}, decode: func(d *projectDraft, n *yaml.Node) (err error) {
		d.project.SessionName, err = decodeOptionalString(n)
		return err
	}},
	"tmux_command": {decode: func(d *projectDraft, n *yaml.Node) (err error) {
		d.project.TmuxCommand, err = decodeOptionalString(n)
		return err
	}},
	"tmux_options": {decode: func(d *projectDraft, n *yaml.Node) (err error) {
		d.project.TmuxOptions, err = decodeOptionalString(n)
		return err
	}},
	"tmux_socket": {aliases: []string{"socket_name"}, decode: func(d *projectDraft, n *yaml.Node) (err error) {
		d.project.TmuxSocket, err = decodeOptionalString(n)
		return err
	}},
	"working_dir": {aliases: []string{"root"}, decode: func(d *projectDraft, n *yaml.Node) (err error) {
		d.project.WorkingDir, err = decodeWorkingDir(n)
		return err
	}},
	"window_base_index": {decode: func(d *projectDraft, n *yaml.Node) (err error) {
		d.project.WindowBaseIndex, err = decodeBaseIndex(n, DefaultWindowBaseIndex)
		return err
	}},
	"pane_base_index": {decode: func(d *projectDraft, n *yaml.Node) (err error) {
		d.project.PaneBaseIndex, err = decodeBaseIndex(n, DefaultPaneBaseIndex)
		return err
	}},
	"startup_window": {decode: func(d *projectDraft, n *yaml.Node) (err error) {
		d.project.StartupWindow, err = decodeStartupWindow(n)
		return err
	}},
	"startup_pane": {decode: func(d *projectDraft, n *yaml.Node) error {
		if isNull(n) {
			d.project.StartupPane = nil
			return nil
		}
		i, err := decodeUint(n)
		if err != nil {
			return err
		}
		d.project.StartupPane = &i
		return nil
	}},

	"on_start":         {aliases: []string{"on_project_start"}, decode: projectCommands(func(p *Project) *[]string { return &p.OnStart })},
	"on_first_start":   {aliases: []string{"on_project_first_start"}, decode: projectCommands(func(p *Project) *[]string { return &p.OnFirstStart })},
	"on_restart":       {aliases: []string{"on_project_restart"}, decode: projectCommands(func(p *Project) *[]string { return &p.OnRestart })},
	"on_exit":          {aliases: []string{"on_project_exit"}, decode: projectCommands(func(p *Project) *[]string { return &p.OnExit })},
	"on_stop":          {aliases: []string{"on_project_stop"}, decode: projectCommands(func(p *Project) *[]string { return &p.OnStop })},
	"on_create":        {decode: projectCommands(func(p *Project) *[]string { return &p.OnCreate })},
	"post_create":      {decode: projectCommands(func(p *Project) *[]string { return &p.PostCreate })},
	"on_pane_create":   {decode: projectCommands(func(p *Project) *[]string { return &p.OnPaneCreate })},
	"post_pane_create": {decode: projectCommands(func(p *Project) *[]string { return &p.PostPaneCreate })},
	"pane_commands":    {aliases: []string{"pre_window", "pane_command"}, decode: projectCommands(func(p *Project) *[]string { return &p.PaneCommands })},

	"attach": {aliases: []string{"tmux_attached"}, decode: func(d *projectDraft, n *yaml.Node) (err error) {
		d.attach, err = decodeOptionalBool(n)
		return err
	}},
	"detached": {aliases: []string{"tmux_detached"}, decode: func(d *projectDraft, n *yaml.Node) (err error) {
		d.detached, err = decodeOptionalBool(n)
		return err
	}},
	"template": {decode: func(d *projectDraft, n *yaml.Node) (err error) {
		d.project.Template, err = decodeTemplate(n)
		return err
	}},
	"windows": {aliases: []string{"window"}, decode: func(d *projectDraft, n *yaml.Node) (err error) {
		d.project.Windows, err = decodeWindows(n)
		return err
	}},
})

func projectCommands(field func(*Project) *[]string) func(*projectDraft, *yaml.Node) error {
	return func(d *projectDraft, n *yaml.Node) error {
		cmds, err := decodeCommandList(n)
		if err != nil {
			return err
		}
		*field(&d.project) = cmds
		return nil
	}
}

// decodeBaseIndex treats null as "use the default".
func decodeBaseIndex(n *yaml.Node, def uint) (uint, error) {
	if isNull(n) {
		return def, nil
	}
	return decodeUint(n)
}

// fieldSpec describes one key of a strict mapping.
type fieldSpec[T any] struct {
	aliases []string
	decode  func(dst *T, n *yaml.Node) error
}

// fieldTable decodes a mapping node into T, resolving alias spellings to
// their canonical field before dispatch.
type fieldTable[T any] struct {
	specs     map[string]fieldSpec[T]
	canonical map[string]string
}

func newFieldTable[T any](specs map[string]fieldSpec[T]) fieldTable[T] {
	t := fieldTable[T]{specs: specs, canonical: make(map[string]string, len(specs))}
	for name, spec := range specs {
		t.canonical[name] = name
		for _, alias := range spec.aliases {
			if other, ok := t.canonical[alias]; ok {
				panic(fmt.Sprintf("project: alias %q registered for both %q and %q", alias, other, name))
			}
			t.canonical[alias] = name
		}
	}
	return t
}

func (t fieldTable[T]) decode(dst *T, n *yaml.Node) error {
	n = resolve(n)
	if n.Kind != yaml.MappingNode {
		return decodeErrorf(n, "expected a mapping, got %s", describe(n))
	}

	seen := make(map[string]string, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := resolve(n.Content[i]), resolve(n.Content[i+1])
		key := k.Value

		name, ok := t.canonical[key]
		if !ok {
			return &DecodeError{Field: key, Line: k.Line, Err: ErrUnknownField}
		}
		if prev, dup := seen[name]; dup {
			err := ErrDuplicateField
			if prev != key {
				err = fmt.Errorf("%w: %q and %q both set %q", ErrDuplicateField, prev, key, name)
			}
			return &DecodeError{Field: key, Line: k.Line, Err: err}
		}
		seen[name] = key

		if err := t.specs[name].decode(dst, v); err != nil {
			return withField(err, key)
		}
	}
	return nil
}

// Node helpers

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	n = resolve(n)
	return n == nil || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null")
}

func describe(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "a mapping"
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return "null"
		case "!!str":
			return fmt.Sprintf("string %q", n.Value)
		default:
			return fmt.Sprintf("%s %s", strings.TrimPrefix(n.ShortTag(), "!!"), n.Value)
		}
	default:
		return "an unexpected node"
	}
}

func decodeString(n *yaml.Node) (string, error) {
	n = resolve(n)
	if n.Kind != yaml.ScalarNode || isNull(n) {
		return "", decodeErrorf(n, "expected a string, got %s", describe(n))
	}
	return n.Value, nil
}

func decodeOptionalString(n *yaml.Node) (*string, error) {
	if isNull(n) {
		return nil, nil
	}
	s, err := decodeString(n)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func decodeUint(n *yaml.Node) (uint, error) {
	n = resolve(n)
	if n.Kind != yaml.ScalarNode || n.ShortTag() != "!!int" {
		return 0, decodeErrorf(n, "expected a non-negative integer, got %s", describe(n))
	}
	var u uint
	if err := n.Decode(&u); err != nil {
		return 0, decodeErrorf(n, "expected a non-negative integer, got %s", n.Value)
	}
	return u, nil
}

func decodeOptionalBool(n *yaml.Node) (*bool, error) {
	if isNull(n) {
		return nil, nil
	}
	var b bool
	if err := resolve(n).Decode(&b); err != nil {
		return nil, decodeErrorf(n, "expected a boolean, got %s", describe(n))
	}
	return &b, nil
}

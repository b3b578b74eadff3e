package project

import (
	"gopkg.in/yaml.v3"
)

// TemplateKind says how Template.Value is interpreted.
type TemplateKind int

const (
	// TemplateDefault uses the built-in launch script template.
	TemplateDefault TemplateKind = iota
	// TemplateFile reads the template from Template.Value as a path.
	TemplateFile
	// TemplateRaw uses Template.Value as the template text.
	TemplateRaw
)

// Template selects the launch script template. It is carried through
// decoding untouched for the renderer.
type Template struct {
	Kind  TemplateKind
	Value string
}

// MarshalYAML writes the form decodeTemplate accepts.
func (t Template) MarshalYAML() (any, error) {
	switch t.Kind {
	case TemplateFile:
		return map[string]string{"file": t.Value}, nil
	case TemplateRaw:
		return map[string]string{"raw": t.Value}, nil
	default:
		return "default", nil
	}
}

// decodeTemplate accepts "default", a bare file path, or a mapping with
// exactly one of file/raw.
func decodeTemplate(n *yaml.Node) (Template, error) {
	n = resolve(n)
	switch {
	case isNull(n):
		return Template{}, nil
	case n.Kind == yaml.ScalarNode:
		if n.Value == "" || n.Value == "default" {
			return Template{}, nil
		}
		return Template{Kind: TemplateFile, Value: expandPath(n.Value)}, nil
	case n.Kind == yaml.MappingNode:
		if len(n.Content) != 2 {
			return Template{}, decodeErrorf(n, "expected exactly one of 'file' or 'raw'")
		}
		var t Template
		if err := templateFields.decode(&t, n); err != nil {
			return Template{}, err
		}
		return t, nil
	default:
		return Template{}, decodeErrorf(n, "expected a template name, path or mapping, got %s", describe(n))
	}
}

var templateFields = newFieldTable(map[string]fieldSpec[Template]{
	"file": {decode: func(t *Template, n *yaml.Node) error {
		s, err := decodeString(n)
		if err != nil {
			return err
		}
		t.Kind, t.Value = TemplateFile, expandPath(s)
		return nil
	}},
	"raw": {decode: func(t *Template, n *yaml.Node) error {
		s, err := decodeString(n)
		if err != nil {
			return err
		}
		t.Kind, t.Value = TemplateRaw, s
		return nil
	}},
})

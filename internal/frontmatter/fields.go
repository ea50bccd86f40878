package frontmatter

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Fields holds the frontmatter keys understood by the doc pipeline.
type Fields struct {
	ID                  string     `yaml:"id"`
	Title               string     `yaml:"title"`
	Description         string     `yaml:"description"`
	Slug                string     `yaml:"slug"`
	SidebarLabel        string     `yaml:"sidebar_label"`
	SidebarPosition     *float64   `yaml:"sidebar_position"`
	Keywords            StringList `yaml:"keywords"`
	Image               string     `yaml:"image"`
	HideTitle           bool       `yaml:"hide_title"`
	HideTableOfContents bool       `yaml:"hide_table_of_contents"`
	CustomEditURL       string     `yaml:"custom_edit_url"`

	// HasCustomEditURL is true when custom_edit_url is present at all, even
	// with a null or empty value. An empty custom URL disables the edit link.
	HasCustomEditURL bool `yaml:"-"`
}

// StringList decodes either a YAML sequence or a comma separated scalar.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*l = nil
		for part := range strings.SplitSeq(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				*l = append(*l, part)
			}
		}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*l = items
		return nil
	default:
		return fmt.Errorf("line %d: expected a list of strings", node.Line)
	}
}

// Decode parses raw frontmatter into Fields.
func Decode(raw []byte) (Fields, error) {
	var fields Fields
	m, err := ParseYAML(raw)
	if err != nil {
		return fields, err
	}
	if len(m) == 0 {
		return fields, nil
	}
	if err := yaml.Unmarshal(raw, &fields); err != nil {
		return Fields{}, err
	}
	_, fields.HasCustomEditURL = m["custom_edit_url"]
	return fields, nil
}

// Parse splits content and decodes its frontmatter, returning the Markdown body.
func Parse(content []byte) (Fields, []byte, error) {
	raw, body, had, err := Split(content)
	if err != nil {
		return Fields{}, nil, err
	}
	if !had {
		return Fields{}, body, nil
	}
	fields, err := Decode(raw)
	if err != nil {
		return Fields{}, nil, err
	}
	return fields, body, nil
}

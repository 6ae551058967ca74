package yamlsidebar

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlItem mirrors one sidebar item. A bare scalar is a doc id shorthand.
type yamlItem struct {
	Doc  string `yaml:"-"`
	Line int    `yaml:"-"`

	Type        string            `yaml:"type"`
	Label       string            `yaml:"label"`
	Href        string            `yaml:"href"`
	ID          string            `yaml:"id"`
	ClassName   string            `yaml:"className"`
	Link        *yamlCategoryLink `yaml:"link"`
	Items       []yamlItem        `yaml:"items"`
	Collapsed   *bool             `yaml:"collapsed"`
	Collapsible *bool             `yaml:"collapsible"`
}

type yamlCategoryLink struct {
	Type string `yaml:"type"`
	ID   string `yaml:"id"`
	Slug string `yaml:"slug"`
}

func (it *yamlItem) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		*it = yamlItem{Doc: n.Value, Line: n.Line}
		return nil
	case yaml.MappingNode:
		type plain yamlItem
		var p plain
		if err := n.Decode(&p); err != nil {
			return err
		}
		*it = yamlItem(p)
		it.Line = n.Line
		return nil
	default:
		return fmt.Errorf("line %d: sidebar item must be a string or a mapping", n.Line)
	}
}

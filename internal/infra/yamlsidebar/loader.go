package yamlsidebar

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aalvaropc/navlink/internal/domain"
	"github.com/aalvaropc/navlink/internal/ports"
	"gopkg.in/yaml.v3"
)

type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

var _ ports.SidebarLoader = (*Loader)(nil)

// LoadSidebars reads a YAML file mapping sidebar ids to item lists, in the
// shape the site renderer consumes:
//
//	gx_cloud:
//	  - type: category
//	    label: Deploy GX Cloud
//	    link: {type: doc, id: deploy/deploy_lp}
//	    items:
//	      - deploy/deployment_patterns
//
// Sidebars are returned in file order.
func (l *Loader) LoadSidebars(path string) ([]domain.Sidebar, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "yamlsidebar.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	return Parse(path, b)
}

// Parse decodes and validates sidebar YAML. path is only used in errors.
func Parse(path string, b []byte) ([]domain.Sidebar, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, parseErr(path, err)
	}
	if len(doc.Content) == 0 {
		return nil, invalidField(path, "(root)", "file is empty")
	}

	top := doc.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, invalidField(path, "(root)", fmt.Sprintf("line %d: expected a mapping of sidebar ids", top.Line))
	}

	out := make([]domain.Sidebar, 0, len(top.Content)/2)
	seen := map[string]int{}
	for i := 0; i+1 < len(top.Content); i += 2 {
		key := top.Content[i]
		id := strings.TrimSpace(key.Value)
		if prev, dup := seen[id]; dup {
			return nil, invalidField(path, id, fmt.Sprintf("line %d: sidebar already defined at line %d", key.Line, prev))
		}
		seen[id] = key.Line

		var items []yamlItem
		if err := top.Content[i+1].Decode(&items); err != nil {
			return nil, parseErr(path, fmt.Errorf("sidebar %s: %w", id, err))
		}

		nodes, err := mapItems(path, id, items)
		if err != nil {
			return nil, err
		}

		sb := domain.Sidebar{ID: id, Items: nodes}
		if err := sb.Validate(); err != nil {
			return nil, validationErr(path, err)
		}
		out = append(out, sb)
	}

	return out, nil
}

func mapItems(path, prefix string, items []yamlItem) ([]domain.Node, error) {
	out := make([]domain.Node, 0, len(items))
	for i, it := range items {
		field := fmt.Sprintf("%s[%d]", prefix, i)
		n, err := mapItem(path, field, it)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func mapItem(path, field string, it yamlItem) (domain.Node, error) {
	if it.Doc != "" {
		return &domain.DocRef{ID: strings.TrimSpace(it.Doc)}, nil
	}

	switch domain.NodeType(strings.TrimSpace(it.Type)) {
	case domain.NodeCategory:
		children, err := mapItems(path, field+".items", it.Items)
		if err != nil {
			return nil, err
		}
		c := &domain.Category{
			Label:       it.Label,
			Items:       children,
			Collapsed:   it.Collapsed,
			Collapsible: it.Collapsible,
		}
		if it.Link != nil {
			c.Link = &domain.CategoryLink{
				Type: domain.LinkTargetType(strings.TrimSpace(it.Link.Type)),
				ID:   strings.TrimSpace(it.Link.ID),
				Slug: strings.TrimSpace(it.Link.Slug),
			}
		}
		return c, nil

	case domain.NodeLink:
		return &domain.Link{
			Label:     it.Label,
			Href:      strings.TrimSpace(it.Href),
			ClassName: it.ClassName,
		}, nil

	case domain.NodeDoc:
		return &domain.DocRef{ID: strings.TrimSpace(it.ID), Label: it.Label}, nil

	case "":
		return nil, invalidField(path, field+".type", fmt.Sprintf("line %d: type is required", it.Line))

	default:
		return nil, invalidField(path, field+".type", fmt.Sprintf("line %d: unsupported type %q (expected category|link|doc)", it.Line, it.Type))
	}
}

func parseErr(path string, err error) error {
	return &domain.OpError{
		Op:   "yamlsidebar.parse",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  err,
	}
}

func invalidField(path, field, msg string) error {
	return validationErr(path, &domain.FieldError{Field: field, Msg: msg})
}

func validationErr(path string, err error) error {
	var fe *domain.FieldError
	if !errors.As(err, &fe) {
		err = fmt.Errorf("%w: %w", err, domain.ErrInvalidConfig)
	}
	return &domain.OpError{
		Op:   "yamlsidebar.validate",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  err,
	}
}

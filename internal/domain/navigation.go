package domain

import (
	"errors"
	"fmt"
	"strings"
)

// NodeType is the discriminant of a sidebar item, as the site renderer expects it.
type NodeType string

const (
	NodeCategory NodeType = "category"
	NodeLink     NodeType = "link"
	NodeDoc      NodeType = "doc"
)

// Node is one sidebar item: *Category, *Link or *DocRef.
type Node interface {
	Type() NodeType
	sealed()
}

// LinkTargetType says what a category label points to when clicked.
type LinkTargetType string

const (
	TargetDoc            LinkTargetType = "doc"
	TargetGeneratedIndex LinkTargetType = "generated-index"
)

// CategoryLink is the landing page of a category.
type CategoryLink struct {
	Type LinkTargetType
	ID   string // TargetDoc
	Slug string // TargetGeneratedIndex (optional)
}

// Category groups child items under a collapsible label.
type Category struct {
	Label       string
	Link        *CategoryLink
	Items       []Node
	Collapsed   *bool
	Collapsible *bool
}

// Link is an arbitrary href, either root-relative (/cloud/...) or external.
type Link struct {
	Label     string
	Href      string
	ClassName string
}

// DocRef references a document by id. Label is optional.
type DocRef struct {
	ID    string
	Label string
}

func (*Category) Type() NodeType { return NodeCategory }
func (*Link) Type() NodeType     { return NodeLink }
func (*DocRef) Type() NodeType   { return NodeDoc }

func (*Category) sealed() {}
func (*Link) sealed()     {}
func (*DocRef) sealed()   {}

// Sidebar is a named navigation tree.
type Sidebar struct {
	ID    string
	Items []Node
}

// SidebarRef is a lightweight reference to a sidebar definition file on disk.
// Err is set, and ID left empty, when the file failed to load.
type SidebarRef struct {
	ID   string
	Path string
	Err  error
}

// IsExternal reports whether href carries a scheme (https://, mailto:, ...).
func IsExternal(href string) bool {
	if strings.HasPrefix(href, "//") {
		return true
	}
	i := strings.Index(href, ":")
	if i <= 0 {
		return false
	}
	return !strings.ContainsAny(href[:i], "/?#")
}

// Visit is called for every node in depth-first order. trail holds the labels
// of enclosing categories; field is the node's field path (e.g. items[2].items[0]).
type Visit func(n Node, trail []string, field string) error

// ErrSkipChildren returned from Visit on a category skips its items.
var ErrSkipChildren = errors.New("skip children")

// Walk visits nodes depth-first in declaration order.
func Walk(items []Node, fn Visit) error {
	return walk(items, nil, "items", fn)
}

func walk(items []Node, trail []string, prefix string, fn Visit) error {
	for i, n := range items {
		field := fmt.Sprintf("%s[%d]", prefix, i)
		err := fn(n, trail, field)
		if errors.Is(err, ErrSkipChildren) {
			continue
		}
		if err != nil {
			return err
		}
		if c, ok := n.(*Category); ok {
			next := append(append([]string(nil), trail...), c.Label)
			if err := walk(c.Items, next, field+".items", fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Links returns every Link in the sidebar in declaration order.
func (s Sidebar) Links() []*Link {
	var out []*Link
	_ = Walk(s.Items, func(n Node, _ []string, _ string) error {
		if l, ok := n.(*Link); ok {
			out = append(out, l)
		}
		return nil
	})
	return out
}

// Count returns the number of nodes per type.
func (s Sidebar) Count() map[NodeType]int {
	out := map[NodeType]int{}
	_ = Walk(s.Items, func(n Node, _ []string, _ string) error {
		out[n.Type()]++
		return nil
	})
	return out
}

// FieldError is a validation failure tied to a field path inside a sidebar.
type FieldError struct {
	Field string
	Msg   string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Field, e.Msg)
}

func (e *FieldError) Unwrap() error { return ErrInvalidConfig }

// Validate checks the tree shape: required labels, hrefs and ids, known link
// target types, and no shared nodes (the tree must not contain cycles).
func (s Sidebar) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return &FieldError{Field: "id", Msg: "sidebar id is required"}
	}

	seen := map[Node]string{}
	return Walk(s.Items, func(n Node, _ []string, field string) error {
		field = s.ID + strings.TrimPrefix(field, "items")
		if n == nil {
			return &FieldError{Field: field, Msg: "item is nil"}
		}
		if prev, dup := seen[n]; dup {
			return &FieldError{Field: field, Msg: fmt.Sprintf("item already used at %s", prev)}
		}
		seen[n] = field

		switch v := n.(type) {
		case *Category:
			if strings.TrimSpace(v.Label) == "" {
				return &FieldError{Field: field + ".label", Msg: "category label is required"}
			}
			if v.Link != nil {
				switch v.Link.Type {
				case TargetDoc:
					if strings.TrimSpace(v.Link.ID) == "" {
						return &FieldError{Field: field + ".link.id", Msg: "doc link id is required"}
					}
				case TargetGeneratedIndex:
				default:
					return &FieldError{Field: field + ".link.type", Msg: fmt.Sprintf("unsupported link type %q", v.Link.Type)}
				}
			}
		case *Link:
			if strings.TrimSpace(v.Label) == "" {
				return &FieldError{Field: field + ".label", Msg: "link label is required"}
			}
			if strings.TrimSpace(v.Href) == "" {
				return &FieldError{Field: field + ".href", Msg: "link href is required"}
			}
		case *DocRef:
			if strings.TrimSpace(v.ID) == "" {
				return &FieldError{Field: field + ".id", Msg: "doc id is required"}
			}
		}
		return nil
	})
}

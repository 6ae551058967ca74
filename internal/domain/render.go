package domain

// RenderedNode is a sidebar item with hrefs computed for one browsing location.
// JSON field names follow the site renderer's sidebar shape.
type RenderedNode struct {
	Type         NodeType       `json:"type"`
	Label        string         `json:"label,omitempty"`
	Href         string         `json:"href,omitempty"`
	ID           string         `json:"id,omitempty"`
	ClassName    string         `json:"className,omitempty"`
	Link         *RenderedLink  `json:"link,omitempty"`
	Collapsed    *bool          `json:"collapsed,omitempty"`
	Collapsible  *bool          `json:"collapsible,omitempty"`
	ResolvedHref string         `json:"resolved_href,omitempty"`
	Error        string         `json:"error,omitempty"`
	Items        []RenderedNode `json:"items,omitempty"`
}

// RenderedLink is a category landing page as declared in the sidebar.
type RenderedLink struct {
	Type LinkTargetType `json:"type"`
	ID   string         `json:"id,omitempty"`
	Slug string         `json:"slug,omitempty"`
}

// RenderedSidebar is the output of Resolver.Render.
type RenderedSidebar struct {
	ID       string         `json:"id"`
	Location string         `json:"location"`
	Version  string         `json:"version,omitempty"`
	Items    []RenderedNode `json:"items"`
}

// Render computes hrefs for every item of sb as seen from location.
// Root-relative links are resolved, documents get a mount-qualified href and
// external links are copied as-is. Links that cannot be resolved keep their
// original href and carry the error message.
func (r *Resolver) Render(sb Sidebar, location string, versions Versions) RenderedSidebar {
	out := RenderedSidebar{
		ID:       sb.ID,
		Location: location,
		Items:    r.renderItems(sb.Items, location, versions),
	}
	if v, ok := r.ActiveVersion(location, versions); ok {
		out.Version = v.ID
	}
	return out
}

func (r *Resolver) renderItems(items []Node, location string, versions Versions) []RenderedNode {
	out := make([]RenderedNode, 0, len(items))
	for _, n := range items {
		switch v := n.(type) {
		case *Category:
			rn := RenderedNode{
				Type:        NodeCategory,
				Label:       v.Label,
				Collapsed:   v.Collapsed,
				Collapsible: v.Collapsible,
				Items:       r.renderItems(v.Items, location, versions),
			}
			if v.Link != nil {
				rn.Link = &RenderedLink{Type: v.Link.Type, ID: v.Link.ID, Slug: v.Link.Slug}
				switch v.Link.Type {
				case TargetDoc:
					rn.ResolvedHref = r.DocPath(v.Link.ID, location, versions)
				case TargetGeneratedIndex:
					// Without a slug the site derives the page from the label.
					if v.Link.Slug != "" {
						rn.ResolvedHref = r.DocPath(v.Link.Slug, location, versions)
					}
				}
			}
			out = append(out, rn)

		case *Link:
			rn := RenderedNode{
				Type:      NodeLink,
				Label:     v.Label,
				Href:      v.Href,
				ClassName: v.ClassName,
			}
			if IsExternal(v.Href) {
				rn.ResolvedHref = v.Href
			} else if resolved, err := r.Resolve(v.Href, location, versions); err != nil {
				rn.ResolvedHref = v.Href
				rn.Error = err.Error()
			} else {
				rn.ResolvedHref = resolved
			}
			out = append(out, rn)

		case *DocRef:
			out = append(out, RenderedNode{
				Type:         NodeDoc,
				Label:        v.Label,
				ID:           v.ID,
				ResolvedHref: r.DocPath(v.ID, location, versions),
			})
		}
	}
	return out
}

// Flatten returns the rendered items depth-first with their nesting depth.
func Flatten(items []RenderedNode) []FlatNode {
	var out []FlatNode
	var rec func([]RenderedNode, int)
	rec = func(ns []RenderedNode, depth int) {
		for _, n := range ns {
			out = append(out, FlatNode{Node: n, Depth: depth})
			rec(n.Items, depth+1)
		}
	}
	rec(items, 0)
	return out
}

// FlatNode is a rendered node paired with its depth in the tree.
type FlatNode struct {
	Node  RenderedNode
	Depth int
}

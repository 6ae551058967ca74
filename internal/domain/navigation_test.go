package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func sampleSidebar() Sidebar {
	return Sidebar{
		ID: "gx_cloud",
		Items: []Node{
			&Category{
				Label: "GX Cloud overview",
				Link:  &CategoryLink{Type: TargetDoc, ID: "overview/gx_cloud_overview"},
				Items: []Node{
					&Link{Label: "GX Cloud concepts", Href: "/cloud/overview/gx_cloud_overview#gx-cloud-concepts"},
				},
			},
			&Category{
				Label: "Deploy GX Cloud",
				Link:  &CategoryLink{Type: TargetDoc, ID: "deploy/deploy_lp"},
				Items: []Node{
					&DocRef{ID: "deploy/deployment_patterns"},
					&DocRef{ID: "deploy/deploy_gx_agent"},
				},
			},
			&Link{Label: "Request a demo for GX Cloud", Href: "https://www.greatexpectations.io/demo", ClassName: "request-demo-sidebar"},
		},
	}
}

func TestSidebarValidate_OK(t *testing.T) {
	if err := sampleSidebar().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSidebarValidate_FieldPaths(t *testing.T) {
	cases := []struct {
		name  string
		items []Node
		field string
	}{
		{"category label", []Node{&Category{}}, "gx_cloud[0].label"},
		{"nested href", []Node{&Category{Label: "a", Items: []Node{&Link{Label: "b"}}}}, "gx_cloud[0].items[0].href"},
		{"doc id", []Node{&Link{Label: "a", Href: "/cloud/a"}, &DocRef{}}, "gx_cloud[1].id"},
		{"link target", []Node{&Category{Label: "a", Link: &CategoryLink{Type: "page"}}}, "gx_cloud[0].link.type"},
		{"doc link id", []Node{&Category{Label: "a", Link: &CategoryLink{Type: TargetDoc}}}, "gx_cloud[0].link.id"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := Sidebar{ID: "gx_cloud", Items: c.items}.Validate()
			if err == nil {
				t.Fatalf("expected error")
			}
			var fe *FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("expected FieldError, got %T", err)
			}
			if fe.Field != c.field {
				t.Fatalf("expected field %s, got %s", c.field, fe.Field)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig in chain")
			}
		})
	}
}

func TestSidebarValidate_RejectsCycle(t *testing.T) {
	c := &Category{Label: "loop"}
	c.Items = []Node{c}

	err := Sidebar{ID: "s", Items: []Node{c}}.Validate()
	if err == nil || !strings.Contains(err.Error(), "already used") {
		t.Fatalf("expected shared node error, got %v", err)
	}
}

func TestSidebarLinksAndCount(t *testing.T) {
	sb := sampleSidebar()

	links := sb.Links()
	if len(links) != 2 {
		t.Fatalf("expected 2 links, got %d", len(links))
	}
	if links[1].ClassName != "request-demo-sidebar" {
		t.Fatalf("expected declaration order")
	}

	count := sb.Count()
	if count[NodeCategory] != 2 || count[NodeDoc] != 2 || count[NodeLink] != 2 {
		t.Fatalf("unexpected counts: %v", count)
	}
}

func TestWalk_TrailAndSkip(t *testing.T) {
	var trails []string
	err := Walk(sampleSidebar().Items, func(n Node, trail []string, _ string) error {
		if c, ok := n.(*Category); ok && c.Label == "Deploy GX Cloud" {
			return ErrSkipChildren
		}
		if _, ok := n.(*Link); ok {
			trails = append(trails, strings.Join(trail, " > "))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trails) != 2 || trails[0] != "GX Cloud overview" || trails[1] != "" {
		t.Fatalf("unexpected trails: %q", trails)
	}
}

func TestIsExternal(t *testing.T) {
	cases := map[string]bool{
		"https://www.greatexpectations.io/demo": true,
		"mailto:docs@example.com":               true,
		"//cdn.example.com/a":                   true,
		"/cloud/overview":                       false,
		"/docs/a:b":                             false,
		"overview":                              false,
	}
	for in, want := range cases {
		if got := IsExternal(in); got != want {
			t.Errorf("IsExternal(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRender(t *testing.T) {
	vs := cloudVersions()
	r := NewResolver()

	out := r.Render(sampleSidebar(), "/cloud/v2/overview", vs)
	if out.Version != "v2" {
		t.Fatalf("expected version v2, got %q", out.Version)
	}

	flat := Flatten(out.Items)
	want := []struct {
		depth int
		href  string
	}{
		{0, "/cloud/v2/overview/gx_cloud_overview"},
		{1, "/cloud/v2/overview/gx_cloud_overview#gx-cloud-concepts"},
		{0, "/cloud/v2/deploy/deploy_lp"},
		{1, "/cloud/v2/deploy/deployment_patterns"},
		{1, "/cloud/v2/deploy/deploy_gx_agent"},
		{0, "https://www.greatexpectations.io/demo"},
	}
	if len(flat) != len(want) {
		t.Fatalf("expected %d nodes, got %d", len(want), len(flat))
	}
	for i, w := range want {
		if flat[i].Depth != w.depth || flat[i].Node.ResolvedHref != w.href {
			t.Errorf("node %d: got depth=%d href=%q, want depth=%d href=%q", i, flat[i].Depth, flat[i].Node.ResolvedHref, w.depth, w.href)
		}
	}
}

func TestRender_BadHrefKeepsOriginal(t *testing.T) {
	sb := Sidebar{ID: "s", Items: []Node{&Link{Label: "blog", Href: "/blog/post"}}}

	out := NewResolver().Render(sb, "/cloud/v2/x", cloudVersions())
	n := out.Items[0]
	if n.ResolvedHref != "/blog/post" {
		t.Fatalf("expected original href, got %q", n.ResolvedHref)
	}
	if n.Error == "" {
		t.Fatalf("expected error to be recorded")
	}
}

func TestRender_JSONKeepsSidebarShape(t *testing.T) {
	collapsed := true
	sb := Sidebar{ID: "gx_cloud", Items: []Node{
		&Category{
			Label:     "Connect",
			Link:      &CategoryLink{Type: TargetDoc, ID: "connect/connect_lp"},
			Collapsed: &collapsed,
			Items:     []Node{&DocRef{ID: "connect/connect_airflow"}},
		},
		&Category{
			Label: "Reference",
			Link:  &CategoryLink{Type: TargetGeneratedIndex, Slug: "/reference"},
		},
	}}

	out := NewResolver().Render(sb, "/cloud/v2/overview", cloudVersions())
	got, err := json.MarshalIndent(out.Items, "", "  ")
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	want := `[
  {
    "type": "category",
    "label": "Connect",
    "link": {
      "type": "doc",
      "id": "connect/connect_lp"
    },
    "collapsed": true,
    "resolved_href": "/cloud/v2/connect/connect_lp",
    "items": [
      {
        "type": "doc",
        "id": "connect/connect_airflow",
        "resolved_href": "/cloud/v2/connect/connect_airflow"
      }
    ]
  },
  {
    "type": "category",
    "label": "Reference",
    "link": {
      "type": "generated-index",
      "slug": "/reference"
    },
    "resolved_href": "/cloud/v2/reference"
  }
]`
	if string(got) != want {
		t.Fatalf("unexpected JSON:\n%s\nwant:\n%s", got, want)
	}
}

// Package hclsidebar loads sidebar trees written in HCL:
//
//	sidebar "gx_cloud" {
//	  category "Deploy GX Cloud" {
//	    link_doc = "deploy/deploy_lp"
//	    doc "deploy/deployment_patterns" {}
//	  }
//	  link "Request a demo" {
//	    href       = "https://www.greatexpectations.io/demo"
//	    class_name = "request-demo-sidebar"
//	  }
//	}
//
// Items keep their source order, so blocks are walked directly instead of
// being decoded into per-type slices.
package hclsidebar

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/aalvaropc/navlink/internal/domain"
	"github.com/aalvaropc/navlink/internal/ports"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

var _ ports.SidebarLoader = (*Loader)(nil)

func (l *Loader) LoadSidebars(path string) ([]domain.Sidebar, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &domain.OpError{
			Op:   "hclsidebar.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, &domain.OpError{
			Op:   "hclsidebar.parse",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  fmt.Errorf("%s: %w", diags.Error(), domain.ErrInvalidConfig),
		}
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, invalid(path, &domain.FieldError{Field: "(root)", Msg: "native HCL syntax required"})
	}

	if err := noAttributes(body, "(root)"); err != nil {
		return nil, invalid(path, err)
	}

	out := make([]domain.Sidebar, 0, len(body.Blocks))
	seen := map[string]bool{}
	for _, blk := range body.Blocks {
		if blk.Type != "sidebar" || len(blk.Labels) != 1 {
			return nil, invalid(path, blockErr("(root)", blk, `expected sidebar "<id>" block`))
		}
		id := strings.TrimSpace(blk.Labels[0])
		if seen[id] {
			return nil, invalid(path, blockErr(id, blk, "sidebar already defined"))
		}
		seen[id] = true

		if err := noAttributes(blk.Body, id); err != nil {
			return nil, invalid(path, err)
		}
		items, err := mapBlocks(blk.Body.Blocks, id)
		if err != nil {
			return nil, invalid(path, err)
		}

		sb := domain.Sidebar{ID: id, Items: items}
		if err := sb.Validate(); err != nil {
			return nil, invalid(path, err)
		}
		out = append(out, sb)
	}
	return out, nil
}

func mapBlocks(blocks hclsyntax.Blocks, prefix string) ([]domain.Node, error) {
	out := make([]domain.Node, 0, len(blocks))
	for i, blk := range blocks {
		field := fmt.Sprintf("%s[%d]", prefix, i)
		n, err := mapBlock(blk, field)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func mapBlock(blk *hclsyntax.Block, field string) (domain.Node, error) {
	if len(blk.Labels) != 1 {
		return nil, blockErr(field, blk, fmt.Sprintf("%s block takes exactly one label", blk.Type))
	}
	label := blk.Labels[0]

	switch domain.NodeType(blk.Type) {
	case domain.NodeCategory:
		var a struct {
			LinkDoc     string `hcl:"link_doc,optional"`
			LinkIndex   string `hcl:"link_index,optional"`
			Collapsed   *bool  `hcl:"collapsed,optional"`
			Collapsible *bool  `hcl:"collapsible,optional"`
		}
		if err := decodeAttrs(blk.Body, field, &a); err != nil {
			return nil, err
		}
		children, err := mapBlocks(blk.Body.Blocks, field+".items")
		if err != nil {
			return nil, err
		}
		c := &domain.Category{
			Label:       label,
			Items:       children,
			Collapsed:   a.Collapsed,
			Collapsible: a.Collapsible,
		}
		switch {
		case a.LinkDoc != "" && a.LinkIndex != "":
			return nil, blockErr(field+".link", blk, "link_doc and link_index are mutually exclusive")
		case a.LinkDoc != "":
			c.Link = &domain.CategoryLink{Type: domain.TargetDoc, ID: a.LinkDoc}
		case a.LinkIndex != "":
			c.Link = &domain.CategoryLink{Type: domain.TargetGeneratedIndex, Slug: a.LinkIndex}
		}
		return c, nil

	case domain.NodeLink:
		var a struct {
			Href      string `hcl:"href"`
			ClassName string `hcl:"class_name,optional"`
		}
		if err := leaf(blk, field, &a); err != nil {
			return nil, err
		}
		return &domain.Link{Label: label, Href: strings.TrimSpace(a.Href), ClassName: a.ClassName}, nil

	case domain.NodeDoc:
		var a struct {
			Label string `hcl:"label,optional"`
		}
		if err := leaf(blk, field, &a); err != nil {
			return nil, err
		}
		return &domain.DocRef{ID: strings.TrimSpace(label), Label: a.Label}, nil

	default:
		return nil, blockErr(field+".type", blk, fmt.Sprintf("unsupported block %q (expected category|link|doc)", blk.Type))
	}
}

func leaf(blk *hclsyntax.Block, field string, target any) error {
	if len(blk.Body.Blocks) > 0 {
		return blockErr(field, blk.Body.Blocks[0], fmt.Sprintf("%s blocks cannot contain nested blocks", blk.Type))
	}
	return decodeAttrs(blk.Body, field, target)
}

// decodeAttrs decodes the attributes of body into target. Nested blocks are
// handled by the caller, so they are hidden from gohcl.
func decodeAttrs(body *hclsyntax.Body, field string, target any) error {
	attrsOnly := &hclsyntax.Body{
		Attributes: body.Attributes,
		SrcRange:   body.SrcRange,
		EndRange:   body.EndRange,
	}
	if diags := gohcl.DecodeBody(attrsOnly, nil, target); diags.HasErrors() {
		return &domain.FieldError{Field: field, Msg: diagsMsg(diags)}
	}
	return nil
}

func noAttributes(body *hclsyntax.Body, field string) error {
	if len(body.Attributes) == 0 {
		return nil
	}
	names := make([]string, 0, len(body.Attributes))
	for name := range body.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	a := body.Attributes[names[0]]
	return &domain.FieldError{Field: field, Msg: fmt.Sprintf("%s: unexpected attribute %q", a.SrcRange, a.Name)}
}

func blockErr(field string, blk *hclsyntax.Block, msg string) error {
	return &domain.FieldError{Field: field, Msg: fmt.Sprintf("%s: %s", blk.TypeRange, msg)}
}

func diagsMsg(diags hcl.Diagnostics) string {
	parts := make([]string, 0, len(diags))
	for _, d := range diags {
		if d.Severity != hcl.DiagError {
			continue
		}
		if d.Subject != nil {
			parts = append(parts, fmt.Sprintf("%s: %s; %s", d.Subject, d.Summary, d.Detail))
		} else {
			parts = append(parts, fmt.Sprintf("%s; %s", d.Summary, d.Detail))
		}
	}
	return strings.Join(parts, ", ")
}

func invalid(path string, err error) error {
	var fe *domain.FieldError
	if !errors.As(err, &fe) {
		err = fmt.Errorf("%w: %w", err, domain.ErrInvalidConfig)
	}
	return &domain.OpError{
		Op:   "hclsidebar.validate",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  err,
	}
}

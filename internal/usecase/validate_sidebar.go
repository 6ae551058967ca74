package usecase

import (
	"context"
	"strings"

	"github.com/aalvaropc/navlink/internal/ctxlog"
	"github.com/aalvaropc/navlink/internal/domain"
	"github.com/aalvaropc/navlink/internal/ports"
)

// ValidationIssue is a link that does not resolve. Versions lists every
// context it failed in, in context order.
type ValidationIssue struct {
	Versions []string `json:"versions"`
	Field    string   `json:"field"`
	Trail    []string `json:"trail,omitempty"`
	Label    string   `json:"label"`
	Href     string   `json:"href"`
	Error    string   `json:"error"`
}

// ValidationResult summarises a validate run.
type ValidationResult struct {
	SidebarID   string            `json:"sidebar_id"`
	SidebarPath string            `json:"sidebar_path"`
	Contexts    []string          `json:"contexts"`
	Checked     int               `json:"checked"`
	Skipped     int               `json:"skipped"`
	Issues      []ValidationIssue `json:"issues"`
}

// OK reports whether no issue was found.
func (r ValidationResult) OK() bool { return len(r.Issues) == 0 }

const defaultContext = "default"

type ValidateSidebar struct {
	sidebars ports.SidebarFinder
	versions ports.VersionLoader
	resolver *domain.Resolver
}

func NewValidateSidebar(sf ports.SidebarFinder, vl ports.VersionLoader, r *domain.Resolver) *ValidateSidebar {
	if r == nil {
		r = domain.NewResolver()
	}
	return &ValidateSidebar{sidebars: sf, versions: vl, resolver: r}
}

// Execute loads the sidebar (which checks its shape) and resolves every
// root-relative link from the default location and from each version mount.
// External links are counted as skipped. q.Location and q.Version are ignored.
func (uc *ValidateSidebar) Execute(ctx context.Context, q SidebarQuery) (ValidationResult, error) {
	q.Location, q.Version = "", ""
	in, err := load(uc.sidebars, uc.versions, q)
	if err != nil {
		return ValidationResult{}, err
	}

	res := ValidationResult{
		SidebarID:   in.sidebar.ID,
		SidebarPath: in.sidebarPath,
		Issues:      []ValidationIssue{},
	}

	type vctx struct{ name, location string }
	contexts := []vctx{{defaultContext, "/"}}
	for _, v := range in.versions {
		if domain.IsDefaultMount(v.Path, uc.resolver.Roots()) {
			continue
		}
		contexts = append(contexts, vctx{v.ID, v.Path + "/"})
	}

	// One issue per link; later contexts only add their name.
	byField := map[string]int{}

	log := ctxlog.FromContext(ctx)
	for _, c := range contexts {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Contexts = append(res.Contexts, c.name)

		err := domain.Walk(in.sidebar.Items, func(n domain.Node, trail []string, field string) error {
			l, ok := n.(*domain.Link)
			if !ok {
				return nil
			}
			if domain.IsExternal(l.Href) {
				if c.name == defaultContext {
					res.Skipped++
				}
				return nil
			}

			res.Checked++
			_, err := uc.resolver.Resolve(l.Href, c.location, in.versions)
			if err == nil {
				return nil
			}
			f := in.sidebar.ID + strings.TrimPrefix(field, "items")
			if i, seen := byField[f]; seen {
				res.Issues[i].Versions = append(res.Issues[i].Versions, c.name)
				return nil
			}
			byField[f] = len(res.Issues)
			res.Issues = append(res.Issues, ValidationIssue{
				Versions: []string{c.name},
				Field:    f,
				Trail:    trail,
				Label:    l.Label,
				Href:     l.Href,
				Error:    err.Error(),
			})
			return nil
		})
		if err != nil {
			return res, err
		}
	}

	log.Info("validate.done",
		"sidebar", res.SidebarID,
		"contexts", len(res.Contexts),
		"checked", res.Checked,
		"issues", len(res.Issues),
	)
	return res, nil
}

package usecase

import (
	"context"

	"github.com/aalvaropc/navlink/internal/ctxlog"
	"github.com/aalvaropc/navlink/internal/domain"
	"github.com/aalvaropc/navlink/internal/ports"
)

type RenderSidebar struct {
	sidebars ports.SidebarFinder
	versions ports.VersionLoader
	resolver *domain.Resolver
}

func NewRenderSidebar(sf ports.SidebarFinder, vl ports.VersionLoader, r *domain.Resolver) *RenderSidebar {
	if r == nil {
		r = domain.NewResolver()
	}
	return &RenderSidebar{sidebars: sf, versions: vl, resolver: r}
}

func (uc *RenderSidebar) Execute(ctx context.Context, q SidebarQuery) (domain.RenderedSidebar, error) {
	in, err := load(uc.sidebars, uc.versions, q)
	if err != nil {
		return domain.RenderedSidebar{}, err
	}

	out := uc.resolver.Render(in.sidebar, in.location, in.versions)
	ctxlog.FromContext(ctx).Debug("render.done",
		"sidebar", out.ID,
		"location", out.Location,
		"version", out.Version,
	)
	return out, nil
}

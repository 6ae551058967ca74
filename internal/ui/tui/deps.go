package tui

import (
	"context"
	"log/slog"

	"github.com/aalvaropc/navlink/internal/domain"
	"github.com/aalvaropc/navlink/internal/usecase"
)

// Renderer renders a sidebar for a query.
type Renderer interface {
	Execute(ctx context.Context, q usecase.SidebarQuery) (domain.RenderedSidebar, error)
}

type Deps struct {
	Renderer Renderer

	// Query is the initial sidebar view. Its Version field is overwritten
	// while cycling through Versions.
	Query    usecase.SidebarQuery
	Versions []string

	Logger *slog.Logger
	Debug  bool
}

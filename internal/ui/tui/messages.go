package tui

import "github.com/aalvaropc/navlink/internal/domain"

type renderedMsg struct {
	version string
	sidebar domain.RenderedSidebar
	err     error
}

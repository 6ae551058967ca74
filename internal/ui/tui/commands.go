package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aalvaropc/navlink/internal/ctxlog"
)

const renderTimeout = 10 * time.Second

func cmdRender(deps Deps, version string) tea.Cmd {
	return func() tea.Msg {
		if deps.Renderer == nil {
			return renderedMsg{version: version, err: errors.New("renderer is nil")}
		}

		log := deps.Logger
		if log == nil {
			log = slog.Default()
		}

		q := deps.Query
		q.Version = version
		if version != "" {
			q.Location = ""
		}

		ctx, cancel := context.WithTimeout(context.Background(), renderTimeout)
		defer cancel()
		ctx = ctxlog.WithLogger(ctx, log)

		sb, err := deps.Renderer.Execute(ctx, q)
		if err != nil {
			log.Error("browse.render.failed", "sidebar", q.SidebarID, "version", version, "err", err)
		} else if deps.Debug {
			log.Debug("browse.render.ok", "sidebar", sb.ID, "location", sb.Location, "version", sb.Version)
		}
		return renderedMsg{version: version, sidebar: sb, err: err}
	}
}

package tui

import (
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
)

const panicToast = "Unexpected error (see .navlink/logs/navlink.log)"

// safeModel keeps a panic in the browse model from tearing down the
// terminal: it logs the browsing state and drops back to the tree.
type safeModel struct {
	m   model
	log *slog.Logger
}

func wrapSafe(m model, log *slog.Logger) safeModel {
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return safeModel{m: m, log: log}
}

func (s safeModel) Init() tea.Cmd {
	return s.m.Init()
}

func (s safeModel) Update(msg tea.Msg) (tm tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			s.logPanic("tui.update", r, "tea_msg", fmt.Sprintf("%T", msg))

			s.m.scr = screenTree
			s.m.loading = false
			if s.m.ctxIdx < 0 || s.m.ctxIdx >= len(s.m.contexts) {
				s.m.ctxIdx = 0
			}
			s.m.toast = panicToast
			tm, cmd = s, nil
		}
	}()

	inner, c := s.m.Update(msg)

	if mm, ok := inner.(model); ok {
		s.m = mm
	} else if sm, ok := inner.(safeModel); ok {
		s = sm
	}

	return s, c
}

func (s safeModel) View() (out string) {
	defer func() {
		if r := recover(); r != nil {
			s.logPanic("tui.view", r)
			out = panicToast
		}
	}()
	return s.m.View()
}

// logPanic records where the panic happened together with what was on
// screen. It must not call model methods that could panic again.
func (s safeModel) logPanic(where string, r any, extra ...any) {
	version := "?"
	if s.m.ctxIdx >= 0 && s.m.ctxIdx < len(s.m.contexts) {
		version = s.m.contexts[s.m.ctxIdx]
		if version == "" {
			version = defaultVersionLabel
		}
	}

	attrs := []any{
		"where", where,
		"screen", s.m.scr.String(),
		"sidebar", s.m.deps.Query.SidebarID,
		"version", version,
		"location", s.m.sidebar.Location,
		"loading", s.m.loading,
		"panic", fmt.Sprint(r),
	}
	attrs = append(attrs, extra...)
	attrs = append(attrs, "stack", string(debug.Stack()))
	s.log.Error("browse.panic.recovered", attrs...)
}

var _ tea.Model = (*safeModel)(nil)

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/navlink/internal/domain"
)

type screen int

const (
	screenTree screen = iota
	screenDetail
)

func (s screen) String() string {
	switch s {
	case screenTree:
		return "tree"
	case screenDetail:
		return "detail"
	default:
		return fmt.Sprintf("screen(%d)", int(s))
	}
}

const defaultVersionLabel = "default"

type nodeItem struct {
	flat domain.FlatNode
}

func (n nodeItem) Title() string {
	indent := strings.Repeat("  ", n.flat.Depth)
	label := n.flat.Node.Label
	if label == "" {
		label = n.flat.Node.ID
	}
	mark := ""
	switch n.flat.Node.Type {
	case domain.NodeCategory:
		mark = "▸ "
	case domain.NodeDoc:
		mark = "• "
	}
	if n.flat.Node.Error != "" {
		mark = "✗ "
	}
	return indent + mark + label
}

func (n nodeItem) Description() string {
	indent := strings.Repeat("  ", n.flat.Depth)
	if n.flat.Node.Error != "" {
		return indent + n.flat.Node.Href + " (unresolved)"
	}
	return indent + n.flat.Node.ResolvedHref
}

func (n nodeItem) FilterValue() string {
	return n.flat.Node.Label + " " + n.flat.Node.ID + " " + n.flat.Node.ResolvedHref
}

type model struct {
	theme Theme
	deps  Deps

	scr  screen
	list list.Model

	// contexts holds "" (default location) followed by version ids.
	contexts []string
	ctxIdx   int

	sidebar domain.RenderedSidebar
	loading bool
	toast   string
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = deps.Query.SidebarID
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	contexts := append([]string{""}, deps.Versions...)
	idx := 0
	for i, v := range contexts {
		if v != "" && v == deps.Query.Version {
			idx = i
		}
	}

	return model{
		theme:    DefaultTheme(),
		deps:     deps,
		scr:      screenTree,
		list:     l,
		contexts: contexts,
		ctxIdx:   idx,
		loading:  true,
	}
}

func (m model) currentVersion() string { return m.contexts[m.ctxIdx] }

func (m model) Init() tea.Cmd {
	return cmdRender(m.deps, m.currentVersion())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-6, msg.Height-10)
		return m, nil

	case renderedMsg:
		// Drop results for a context we already left.
		if msg.version != m.currentVersion() {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, m.list.SetItems(nil)
		}
		m.toast = ""
		m.sidebar = msg.sidebar
		flat := domain.Flatten(msg.sidebar.Items)
		items := make([]list.Item, 0, len(flat))
		for _, f := range flat {
			items = append(items, nodeItem{flat: f})
		}
		return m, m.list.SetItems(items)

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			if m.scr == screenTree {
				return m, tea.Quit
			}
			m.scr = screenTree
			return m, nil

		case "tab", "shift+tab":
			if m.scr != screenTree || len(m.contexts) < 2 {
				return m, nil
			}
			step := 1
			if msg.String() == "shift+tab" {
				step = len(m.contexts) - 1
			}
			m.ctxIdx = (m.ctxIdx + step) % len(m.contexts)
			m.loading = true
			return m, cmdRender(m.deps, m.currentVersion())

		case "enter":
			if m.scr == screenTree {
				if _, ok := m.list.SelectedItem().(nodeItem); ok {
					m.scr = screenDetail
				}
				return m, nil
			}

		case "esc", "b":
			if m.scr != screenTree {
				m.scr = screenTree
				return m, nil
			}
		}
	}

	if m.scr == screenTree {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) versionLabel() string {
	if v := m.currentVersion(); v != "" {
		return v
	}
	return defaultVersionLabel
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)

	header := m.theme.Title.Render("navlink") + "  " + m.theme.Badge.Render(m.versionLabel()) + "\n"
	loc := m.sidebar.Location
	if m.loading {
		loc = "rendering…"
	}
	header += m.theme.Subtitle.Render(fmt.Sprintf("sidebar %s • location %s", m.deps.Query.SidebarID, loc)) + "\n"

	if m.toast != "" {
		header += m.theme.Error.Render(m.toast) + "\n"
	}

	switch m.scr {
	case screenTree:
		help := m.theme.Help.Render("↑/↓ navigate • tab version • enter details • / filter • q quit")
		return wrap.Render(header + "\n" + m.theme.Card.Render(m.list.View()) + "\n" + help)

	case screenDetail:
		it, _ := m.list.SelectedItem().(nodeItem)
		card := m.theme.Card.Render(
			m.theme.Title.Render(clampString(it.flat.Node.Label, 60)) + "\n\n" +
				renderNodeDetails(it.flat) + "\n" +
				m.theme.Help.Render("esc/b back • q tree"),
		)
		return wrap.Render(header + "\n" + card)

	default:
		return wrap.Render(header + "\n" + "unknown state")
	}
}

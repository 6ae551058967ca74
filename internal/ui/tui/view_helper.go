package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aalvaropc/navlink/internal/domain"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

func renderNodeDetails(f domain.FlatNode) string {
	n := f.Node
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Type:     %s\n", n.Type))
	if n.ID != "" {
		b.WriteString(fmt.Sprintf("Doc id:   %s\n", n.ID))
	}
	if n.Link != nil {
		target := n.Link.ID
		if n.Link.Type == domain.TargetGeneratedIndex {
			target = n.Link.Slug
		}
		b.WriteString(fmt.Sprintf("Landing:  %s %s\n", n.Link.Type, target))
	}
	if n.Href != "" {
		b.WriteString(fmt.Sprintf("Href:     %s\n", n.Href))
	}
	if n.ResolvedHref != "" {
		b.WriteString(fmt.Sprintf("Resolved: %s\n", n.ResolvedHref))
	}
	if n.ClassName != "" {
		b.WriteString(fmt.Sprintf("Class:    %s\n", n.ClassName))
	}
	if domain.IsExternal(n.Href) {
		b.WriteString("External: yes\n")
	}
	if len(n.Items) > 0 {
		b.WriteString(fmt.Sprintf("Children: %d\n", len(n.Items)))
	}
	if n.Error != "" {
		b.WriteString("\nError:\n  ")
		b.WriteString(n.Error)
		b.WriteString("\n")
	}
	return b.String()
}

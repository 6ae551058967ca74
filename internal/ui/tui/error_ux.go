package tui

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aalvaropc/navlink/internal/domain"
)

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {

		case domain.KindNotFound:
			switch {
			case strings.Contains(oe.Op, "sidebarfs"):
				return "Sidebar not found"
			case strings.Contains(oe.Op, "yamlversions"), strings.Contains(oe.Op, "globaldata"):
				return "Versions file not found"
			case strings.Contains(oe.Op, "usecase.version"):
				return "Unknown version"
			case strings.Contains(oe.Op, "workspacefinder"):
				return "Workspace not found"
			}
			return "Not found"

		case domain.KindInvalidArgument:
			return "Link is not root-relative"

		case domain.KindInvalidConfig:
			base := "config"
			if strings.TrimSpace(oe.Path) != "" {
				base = filepath.Base(oe.Path)
			}

			var fe *domain.FieldError
			if errors.As(err, &fe) {
				return "Invalid " + base + ": " + fe.Field
			}

			line := extractLine(err.Error())
			if line != "" {
				return "Invalid file at " + base + " line " + line
			}
			return "Invalid " + base

		default:
			return "Unexpected error (see logs)"
		}
	}

	if looksLikeYAMLProblem(err.Error()) {
		line := extractLine(err.Error())
		if line != "" {
			return "Invalid YAML line " + line
		}
		return "Invalid YAML"
	}

	return "Unexpected error (see logs)"
}

func looksLikeYAMLProblem(s string) bool {
	ls := strings.ToLower(s)
	return strings.Contains(ls, "yaml:") || strings.Contains(ls, "did not find expected") || strings.Contains(ls, "cannot unmarshal")
}

func extractLine(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}

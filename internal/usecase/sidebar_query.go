package usecase

import (
	"fmt"
	"strings"

	"github.com/aalvaropc/navlink/internal/domain"
	"github.com/aalvaropc/navlink/internal/ports"
)

// SidebarQuery selects a sidebar, a version registry and the location the
// sidebar is viewed from.
type SidebarQuery struct {
	Root      string
	SidebarID string

	// VersionsPath is the registry file. Empty means no versions.
	VersionsPath string

	// Location is the page path the sidebar is rendered on. Version, when
	// set, takes precedence and places the location under that version's mount.
	Location string
	Version  string
}

type loaded struct {
	sidebar     domain.Sidebar
	sidebarPath string
	versions    domain.Versions
	location    string
	version     string
}

func load(sidebars ports.SidebarFinder, versions ports.VersionLoader, q SidebarQuery) (loaded, error) {
	sb, sbPath, err := sidebars.Find(q.Root, q.SidebarID)
	if err != nil {
		return loaded{}, err
	}

	var vs domain.Versions
	if strings.TrimSpace(q.VersionsPath) != "" {
		vs, err = versions.LoadVersions(q.VersionsPath)
		if err != nil {
			return loaded{}, err
		}
	}

	loc, err := locationFor(q, vs)
	if err != nil {
		return loaded{}, err
	}

	return loaded{
		sidebar:     sb,
		sidebarPath: sbPath,
		versions:    vs,
		location:    loc,
		version:     q.Version,
	}, nil
}

func locationFor(q SidebarQuery, vs domain.Versions) (string, error) {
	if q.Version != "" {
		v, ok := vs.Get(q.Version)
		if !ok {
			return "", &domain.OpError{
				Op:   "usecase.version",
				Kind: domain.KindNotFound,
				Path: q.VersionsPath,
				Err:  fmt.Errorf("version %q: %w", q.Version, domain.ErrNotFound),
			}
		}
		return v.Path + "/", nil
	}
	if q.Location != "" {
		return q.Location, nil
	}
	return "/", nil
}

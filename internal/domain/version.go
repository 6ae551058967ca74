package domain

import (
	"fmt"
	"strings"
)

// DefaultRoots are the top-level sections a root-relative documentation path
// may start with. A version mounted exactly at one of them is the current
// (fallback) version of that section.
var DefaultRoots = []string{"/docs", "/cloud"}

// Version describes one published documentation version.
// Path is the mount path the version is served under (e.g. /docs/1.1.1).
type Version struct {
	ID     string `json:"id"`
	Path   string `json:"path"`
	Label  string `json:"label,omitempty"`
	Banner string `json:"banner,omitempty"`
	IsLast bool   `json:"is_last,omitempty"`
}

// Versions is an ordered version registry. Order is the declaration order of
// the source it was loaded from and decides which version wins when several
// mount paths match the same location.
type Versions []Version

// Get returns the version with the given id.
func (vs Versions) Get(id string) (Version, bool) {
	for _, v := range vs {
		if v.ID == id {
			return v, true
		}
	}
	return Version{}, false
}

// IDs returns version ids in registry order.
func (vs Versions) IDs() []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.ID)
	}
	return out
}

// IsDefaultMount reports whether path is exactly one of roots.
func IsDefaultMount(path string, roots []string) bool {
	for _, r := range roots {
		if path == r {
			return true
		}
	}
	return false
}

// Validate checks ids and mount paths: both required, ids unique, paths
// absolute without a trailing slash.
func (vs Versions) Validate() error {
	seen := map[string]int{}
	for i, v := range vs {
		field := fmt.Sprintf("versions[%d]", i)
		if strings.TrimSpace(v.ID) == "" {
			return &FieldError{Field: field + ".id", Msg: "version id is required"}
		}
		if prev, dup := seen[v.ID]; dup {
			return &FieldError{Field: field + ".id", Msg: fmt.Sprintf("duplicate version id %q (first at versions[%d])", v.ID, prev)}
		}
		seen[v.ID] = i

		switch {
		case strings.TrimSpace(v.Path) == "":
			return &FieldError{Field: field + ".path", Msg: "mount path is required"}
		case !strings.HasPrefix(v.Path, "/"):
			return &FieldError{Field: field + ".path", Msg: fmt.Sprintf("mount path %q must start with /", v.Path)}
		case len(v.Path) > 1 && strings.HasSuffix(v.Path, "/"):
			return &FieldError{Field: field + ".path", Msg: fmt.Sprintf("mount path %q must not end with /", v.Path)}
		}
	}
	return nil
}

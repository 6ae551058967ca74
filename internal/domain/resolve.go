package domain

import (
	"io"
	"log/slog"
	"strings"
)

// MatchPolicy decides which version wins when more than one mount path
// prefixes the current location.
type MatchPolicy string

const (
	// MatchFirst picks the first matching version in registry order.
	MatchFirst MatchPolicy = "first"
	// MatchLongest picks the matching version with the longest mount path.
	// Ties fall back to registry order.
	MatchLongest MatchPolicy = "longest"
)

// ParseMatchPolicy maps a config/flag value to a MatchPolicy. Empty means MatchFirst.
func ParseMatchPolicy(s string) (MatchPolicy, error) {
	switch MatchPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", MatchFirst:
		return MatchFirst, nil
	case MatchLongest:
		return MatchLongest, nil
	default:
		return "", invalidArgument("resolve.match", "unsupported match policy %q (expected first|longest)", s)
	}
}

// Resolver rewrites root-relative documentation paths so they point into the
// version the reader is currently browsing.
//
// A Resolver holds no mutable state and is safe for concurrent use.
type Resolver struct {
	roots []string
	match MatchPolicy
	log   *slog.Logger
}

// ResolverOption configures Resolver.
type ResolverOption func(*Resolver)

// WithRoots overrides the recognized root prefixes (default: /docs, /cloud).
func WithRoots(roots ...string) ResolverOption {
	return func(r *Resolver) {
		if len(roots) > 0 {
			r.roots = append([]string(nil), roots...)
		}
	}
}

// WithMatchPolicy overrides the version match policy (default: MatchFirst).
func WithMatchPolicy(p MatchPolicy) ResolverOption {
	return func(r *Resolver) {
		if p != "" {
			r.match = p
		}
	}
}

// WithLogger sets the logger used for per-call debug traces.
func WithLogger(l *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		roots: append([]string(nil), DefaultRoots...),
		match: MatchFirst,
		log:   slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultResolver = NewResolver()

// Resolve uses the default roots and first-match policy.
func Resolve(path, location string, versions Versions) (string, error) {
	return defaultResolver.Resolve(path, location, versions)
}

// Roots returns a copy of the recognized root prefixes.
func (r *Resolver) Roots() []string {
	return append([]string(nil), r.roots...)
}

// Policy returns the configured match policy.
func (r *Resolver) Policy() MatchPolicy {
	return r.match
}

// Resolve returns the version-qualified form of path for a reader currently
// at location.
//
// Example: with versions {1.1.1: /docs/1.1.1, current: /docs},
//
//	Resolve("/docs/my-doc", "/docs/1.1.1/intro", vs) == "/docs/1.1.1/my-doc"
//	Resolve("/docs/my-doc", "/docs/intro", vs)       == "/docs/my-doc"
//
// path must start with one of the recognized roots; anything else fails with
// KindInvalidArgument. Resolving an already versioned path is not a no-op.
func (r *Resolver) Resolve(path, location string, versions Versions) (string, error) {
	r.log.Debug("resolve.path", "path", path, "location", location)

	if !r.HasRoot(path) {
		return "", invalidArgument("resolve", "path %q must be root-relative (one of %s)", path, strings.Join(r.roots, ", "))
	}

	v, ok := r.ActiveVersion(location, versions)
	if !ok {
		return path, nil
	}

	return v.Path + r.stripRoot(path), nil
}

// HasRoot reports whether path starts with a recognized root prefix.
func (r *Resolver) HasRoot(path string) bool {
	for _, root := range r.roots {
		if strings.HasPrefix(path, root) {
			return true
		}
	}
	return false
}

// ActiveVersion returns the non-default version whose mount path contains
// location, if any.
func (r *Resolver) ActiveVersion(location string, versions Versions) (Version, bool) {
	var (
		best  Version
		found bool
	)
	for _, v := range versions {
		// The current version of a section matches every location under it.
		if IsDefaultMount(v.Path, r.roots) {
			continue
		}
		if !strings.HasPrefix(location, v.Path+"/") {
			continue
		}
		if r.match != MatchLongest {
			return v, true
		}
		if !found || len(v.Path) > len(best.Path) {
			best, found = v, true
		}
	}
	return best, found
}

// SectionRoot returns the root the location belongs to, or the first root.
func (r *Resolver) SectionRoot(location string) string {
	for _, root := range r.roots {
		if location == root || strings.HasPrefix(location, root+"/") {
			return root
		}
	}
	return r.roots[0]
}

// DocPath returns the href for a document id under the active mount for location.
func (r *Resolver) DocPath(id, location string, versions Versions) string {
	mount := r.SectionRoot(location)
	if v, ok := r.ActiveVersion(location, versions); ok {
		mount = v.Path
	}
	return mount + "/" + strings.TrimPrefix(id, "/")
}

// stripRoot replaces the first "<root>/" occurrence with "/" for every root,
// in root order.
func (r *Resolver) stripRoot(path string) string {
	for _, root := range r.roots {
		path = strings.Replace(path, root+"/", "/", 1)
	}
	return path
}

package sidebarfs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aalvaropc/navlink/internal/domain"
	"github.com/aalvaropc/navlink/internal/infra/hclsidebar"
	"github.com/aalvaropc/navlink/internal/infra/yamlsidebar"
	"github.com/aalvaropc/navlink/internal/ports"
)

// Catalog loads sidebar files by extension and lists the sidebars of a
// workspace directory.
type Catalog struct {
	sidebarsDir string
	loaders     map[string]ports.SidebarLoader
}

type Option func(*Catalog)

func WithSidebarsDir(dir string) Option {
	return func(c *Catalog) { c.sidebarsDir = dir }
}

// WithLoader registers a loader for a file extension (including the dot).
func WithLoader(ext string, l ports.SidebarLoader) Option {
	return func(c *Catalog) { c.loaders[strings.ToLower(ext)] = l }
}

func NewCatalog(opts ...Option) *Catalog {
	yl := yamlsidebar.NewLoader()
	c := &Catalog{
		sidebarsDir: "sidebars",
		loaders: map[string]ports.SidebarLoader{
			".yaml": yl,
			".yml":  yl,
			".hcl":  hclsidebar.NewLoader(),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var (
	_ ports.SidebarLoader  = (*Catalog)(nil)
	_ ports.SidebarCatalog = (*Catalog)(nil)
	_ ports.SidebarFinder  = (*Catalog)(nil)
)

// Supports reports whether a loader is registered for path's extension.
func (c *Catalog) Supports(path string) bool {
	_, ok := c.loaders[strings.ToLower(filepath.Ext(path))]
	return ok
}

func (c *Catalog) LoadSidebars(path string) ([]domain.Sidebar, error) {
	ext := strings.ToLower(filepath.Ext(path))
	l, ok := c.loaders[ext]
	if !ok {
		return nil, &domain.OpError{
			Op:   "sidebarfs.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  fmt.Errorf("unsupported sidebar file extension %q: %w", ext, domain.ErrInvalidConfig),
		}
	}
	return l.LoadSidebars(path)
}

// ListSidebars returns one ref per sidebar found in the workspace sidebars
// directory, sorted by id. A file that fails to load yields a single ref
// carrying the load error, listed after the loaded sidebars.
func (c *Catalog) ListSidebars(root string) ([]domain.SidebarRef, error) {
	dir := filepath.Join(root, c.sidebarsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "sidebarfs.list",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  err,
		}
	}

	var refs []domain.SidebarRef
	for _, e := range entries {
		if e.IsDir() || !c.Supports(e.Name()) {
			continue
		}

		p := filepath.Join(dir, e.Name())
		sbs, err := c.LoadSidebars(p)
		if err != nil {
			refs = append(refs, domain.SidebarRef{Path: p, Err: err})
			continue
		}
		for _, sb := range sbs {
			refs = append(refs, domain.SidebarRef{ID: sb.ID, Path: p})
		}
	}

	sort.Slice(refs, func(i, j int) bool {
		if (refs[i].Err == nil) != (refs[j].Err == nil) {
			return refs[i].Err == nil
		}
		if refs[i].ID == refs[j].ID {
			return refs[i].Path < refs[j].Path
		}
		return refs[i].ID < refs[j].ID
	})
	return refs, nil
}

// Find loads the sidebar with the given id from the workspace. When no
// loadable file defines id, the first load error in the directory is
// returned instead of not_found: the sidebar may live in the broken file.
func (c *Catalog) Find(root, id string) (domain.Sidebar, string, error) {
	refs, err := c.ListSidebars(root)
	if err != nil {
		return domain.Sidebar{}, "", err
	}
	var loadErr error
	for _, r := range refs {
		if r.Err != nil {
			if loadErr == nil {
				loadErr = r.Err
			}
			continue
		}
		if r.ID != id {
			continue
		}
		sbs, err := c.LoadSidebars(r.Path)
		if err != nil {
			return domain.Sidebar{}, "", err
		}
		for _, sb := range sbs {
			if sb.ID == id {
				return sb, r.Path, nil
			}
		}
	}
	if loadErr != nil {
		return domain.Sidebar{}, "", loadErr
	}
	return domain.Sidebar{}, "", &domain.OpError{
		Op:   "sidebarfs.find",
		Kind: domain.KindNotFound,
		Path: filepath.Join(root, c.sidebarsDir),
		Err:  fmt.Errorf("sidebar %q: %w", id, domain.ErrNotFound),
	}
}

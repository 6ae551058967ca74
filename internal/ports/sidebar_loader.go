package ports

import "github.com/aalvaropc/navlink/internal/domain"

// SidebarLoader loads sidebar trees from a source (e.g., filesystem).
type SidebarLoader interface {
	LoadSidebars(path string) ([]domain.Sidebar, error)
}

// SidebarCatalog lists sidebar definitions available in a workspace.
type SidebarCatalog interface {
	ListSidebars(root string) ([]domain.SidebarRef, error)
}

// SidebarFinder loads a single sidebar by id from a workspace.
type SidebarFinder interface {
	Find(root, id string) (domain.Sidebar, string, error)
}

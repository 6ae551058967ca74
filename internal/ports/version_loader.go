package ports

import "github.com/aalvaropc/navlink/internal/domain"

// VersionLoader loads the ordered version registry.
type VersionLoader interface {
	LoadVersions(path string) (domain.Versions, error)
}

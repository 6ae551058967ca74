package yamlversions

import (
	"os"
	"strings"

	"github.com/aalvaropc/navlink/internal/domain"
	"github.com/aalvaropc/navlink/internal/ports"
	"gopkg.in/yaml.v3"
)

type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

var _ ports.VersionLoader = (*Loader)(nil)

type yamlVersions struct {
	Versions []yamlVersion `yaml:"versions"`
}

type yamlVersion struct {
	ID     string `yaml:"id"`
	Path   string `yaml:"path"`
	Label  string `yaml:"label"`
	Banner string `yaml:"banner"`
	Last   bool   `yaml:"last"`
}

// LoadVersions reads an ordered version registry:
//
//	versions:
//	  - {id: v2, path: /cloud/v2}
//	  - {id: current, path: /cloud}
func (l *Loader) LoadVersions(path string) (domain.Versions, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "yamlversions.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlVersions
	if err := yaml.Unmarshal(b, &y); err != nil {
		return nil, &domain.OpError{
			Op:   "yamlversions.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	out := make(domain.Versions, 0, len(y.Versions))
	for _, v := range y.Versions {
		out = append(out, domain.Version{
			ID:     strings.TrimSpace(v.ID),
			Path:   strings.TrimSpace(v.Path),
			Label:  v.Label,
			Banner: v.Banner,
			IsLast: v.Last,
		})
	}

	if err := out.Validate(); err != nil {
		return nil, &domain.OpError{
			Op:   "yamlversions.validate",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return out, nil
}

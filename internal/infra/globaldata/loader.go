// Package globaldata reads the version registry from the site generator's
// global data dump (e.g. .docusaurus/globalData.json).
package globaldata

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/aalvaropc/navlink/internal/domain"
	"github.com/aalvaropc/navlink/internal/ports"
)

type Loader struct {
	versionsPath string
}

type Option func(*Loader)

// WithVersionsPath sets the JSONPath selecting the versions array.
func WithVersionsPath(expr string) Option {
	return func(l *Loader) {
		if strings.TrimSpace(expr) != "" {
			l.versionsPath = expr
		}
	}
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{versionsPath: domain.DefaultVersionsPath}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ ports.VersionLoader = (*Loader)(nil)

// LoadVersions selects the versions array and maps each {name, path, label,
// isLast} element, keeping array order.
func (l *Loader) LoadVersions(path string) (domain.Versions, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "globaldata.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, invalid(path, err)
	}

	raw, err := jsonpath.Get(l.versionsPath, doc)
	if err != nil {
		return nil, invalid(path, fmt.Errorf("jsonpath %s: %w", l.versionsPath, err))
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, invalid(path, fmt.Errorf("jsonpath %s: expected an array, got %T", l.versionsPath, raw))
	}

	out := make(domain.Versions, 0, len(items))
	for i, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			return nil, invalid(path, fmt.Errorf("versions[%d]: expected an object, got %T", i, it))
		}
		out = append(out, domain.Version{
			ID:     str(m["name"]),
			Path:   str(m["path"]),
			Label:  str(m["label"]),
			IsLast: m["isLast"] == true,
		})
	}

	if err := out.Validate(); err != nil {
		return nil, invalid(path, err)
	}
	return out, nil
}

func str(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func invalid(path string, err error) error {
	return &domain.OpError{
		Op:   "globaldata.load",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  err,
	}
}

package workspacefinder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aalvaropc/navlink/internal/domain"
	"github.com/aalvaropc/navlink/internal/ports"
)

// ConfigFileName marks a navlink workspace root.
const ConfigFileName = "navlink.yaml"

// Finder walks up from a start directory to the nearest directory holding a
// regular navlink.yaml file.
type Finder struct {
	ConfigFile string
}

func NewFinder() *Finder {
	return &Finder{ConfigFile: ConfigFileName}
}

var _ ports.WorkspaceLocator = (*Finder)(nil)

// FindRoot returns the workspace root for startDir. startDir may also be a
// file inside the workspace, such as a sidebar definition.
func (f *Finder) FindRoot(startDir string) (string, error) {
	if startDir == "" {
		return "", &domain.OpError{
			Op:   "workspacefinder.findroot",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("start directory is empty"),
		}
	}

	start, err := filepath.Abs(startDir)
	if err != nil {
		return "", &domain.OpError{
			Op:   "workspacefinder.findroot",
			Kind: domain.KindExecution,
			Path: startDir,
			Err:  err,
		}
	}
	if info, err := os.Stat(start); err == nil && !info.IsDir() {
		start = filepath.Dir(start)
	}

	marker := f.ConfigFile
	if marker == "" {
		marker = ConfigFileName
	}

	for dir := filepath.Clean(start); ; {
		if isRegularFile(filepath.Join(dir, marker)) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", &domain.OpError{
		Op:   "workspacefinder.findroot",
		Kind: domain.KindNotFound,
		Path: start,
		Err:  fmt.Errorf("no %s in this directory or any parent (run `navlink init`): %w", marker, domain.ErrNotFound),
	}
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

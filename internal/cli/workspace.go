package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/navlink/internal/domain"
	"github.com/aalvaropc/navlink/internal/infra/globaldata"
	"github.com/aalvaropc/navlink/internal/infra/httpclient"
	"github.com/aalvaropc/navlink/internal/infra/logger"
	"github.com/aalvaropc/navlink/internal/infra/reportstore"
	"github.com/aalvaropc/navlink/internal/infra/sidebarfs"
	"github.com/aalvaropc/navlink/internal/infra/workspacefinder"
	"github.com/aalvaropc/navlink/internal/infra/yamlversions"
	"github.com/aalvaropc/navlink/internal/ports"
)

type workspaceCtx struct {
	root string
	cfg  domain.Config

	resolver *domain.Resolver
	sidebars *sidebarfs.Catalog
	versions ports.VersionLoader

	// versionsPath is the registry file in use; empty when the workspace has none.
	versionsPath string

	prober ports.LinkProber
	store  ports.ReportStore
}

// workspaceFlags are shared by every command that reads a workspace.
type workspaceFlags struct {
	workspace string
	versions  string
	match     string
}

func (f *workspaceFlags) register(c *cobra.Command) {
	c.Flags().StringVarP(&f.workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVar(&f.versions, "versions", "", "Version registry file (.yaml or globalData .json); defaults to the workspace config")
	c.Flags().StringVar(&f.match, "match", "", "Version match policy: first|longest (overrides navlink.yaml)")
}

func loadWorkspace(f workspaceFlags) (*workspaceCtx, error) {
	root, err := resolveWorkspaceRoot(f.workspace)
	if err != nil {
		return nil, err
	}

	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return nil, err
	}
	return newWorkspaceCtx(root, cfg, f)
}

func newWorkspaceCtx(root string, cfg domain.Config, f workspaceFlags) (*workspaceCtx, error) {
	if m := strings.TrimSpace(f.match); m != "" {
		p, err := domain.ParseMatchPolicy(m)
		if err != nil {
			return nil, err
		}
		cfg.Resolve.Match = p
	}

	hc := httpclient.DefaultConfig()
	hc.Timeout = cfg.Check.Timeout
	hc.ResponseHeader = cfg.Check.Timeout
	hc.MaxIdleConnsPerHost = cfg.Check.Concurrency
	prober := httpclient.NewProber(
		httpclient.WithClient(httpclient.New(hc)),
		httpclient.WithTimeout(cfg.Check.Timeout),
	)

	versions := versionLoader{
		yaml: yamlversions.NewLoader(),
		json: globaldata.NewLoader(globaldata.WithVersionsPath(cfg.Resolve.VersionsPath)),
	}

	return &workspaceCtx{
		root:         root,
		cfg:          cfg,
		resolver:     domain.NewResolverFromConfig(cfg, domain.WithLogger(logger.L())),
		sidebars:     sidebarfs.NewCatalog(sidebarfs.WithSidebarsDir(cfg.Paths.SidebarsDir)),
		versions:     versions,
		versionsPath: pickVersionsPath(root, cfg, f.versions),
		prober:       prober,
		store:        reportstore.NewJSONStore(root, cfg, reportstore.WithIndex(true)),
	}, nil
}

// versionLoader picks the registry reader by file extension: .json is the
// site generator's global data dump, anything else is a versions.yaml.
type versionLoader struct {
	yaml ports.VersionLoader
	json ports.VersionLoader
}

func (l versionLoader) LoadVersions(path string) (domain.Versions, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return l.json.LoadVersions(path)
	}
	return l.yaml.LoadVersions(path)
}

// pickVersionsPath prefers the flag, then the configured versions file, then
// the global data dump. Returns "" when none exists.
func pickVersionsPath(root string, cfg domain.Config, flag string) string {
	if p := strings.TrimSpace(flag); p != "" {
		if !filepath.IsAbs(p) {
			p = filepath.Join(root, p)
		}
		return filepath.Clean(p)
	}
	for _, p := range []string{cfg.Paths.VersionsFile, cfg.Paths.GlobalData} {
		if strings.TrimSpace(p) == "" {
			continue
		}
		full := filepath.Join(root, p)
		if fileExists(full) {
			return full
		}
	}
	return ""
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	var locator ports.WorkspaceLocator = workspacefinder.NewFinder()
	root, err := locator.FindRoot(wd)
	if err != nil {
		return "", fmt.Errorf("workspace not found from %q (tip: run `navlink init`): %w", wd, err)
	}
	return root, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

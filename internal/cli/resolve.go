package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/navlink/internal/domain"
)

type resolveResult struct {
	Path     string `json:"path"`
	Location string `json:"location"`
	Resolved string `json:"resolved"`
	Version  string `json:"version,omitempty"`
}

func resolveCmd() *cobra.Command {
	var wf workspaceFlags
	var location string
	var maps []string
	var format string

	c := &cobra.Command{
		Use:   "resolve <path>...",
		Short: "Resolve root-relative paths for a reader at --location",
		Example: `  navlink resolve /docs/my-doc --location /docs/1.1.1/intro
  navlink resolve /cloud/overview --location /cloud/v2/x --map v2=/cloud/v2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspaceOrDefaults(wf)
			if err != nil {
				return err
			}

			var versions domain.Versions
			if len(maps) > 0 {
				versions, err = parseVersionMaps(maps)
			} else if ws.versionsPath != "" {
				versions, err = ws.versions.LoadVersions(ws.versionsPath)
			}
			if err != nil {
				return err
			}

			out := make([]resolveResult, 0, len(args))
			for _, p := range args {
				resolved, err := ws.resolver.Resolve(p, location, versions)
				if err != nil {
					_ = printResolved(cmd.OutOrStdout(), out, format)
					return err
				}
				r := resolveResult{Path: p, Location: location, Resolved: resolved}
				if v, ok := ws.resolver.ActiveVersion(location, versions); ok {
					r.Version = v.ID
				}
				out = append(out, r)
			}
			return printResolved(cmd.OutOrStdout(), out, format)
		},
	}

	wf.register(c)
	c.Flags().StringVarP(&location, "location", "l", "/", "Page path the reader is currently on")
	c.Flags().StringArrayVar(&maps, "map", nil, "Ad-hoc version as id=path (repeatable; replaces the registry file)")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

// loadWorkspaceOrDefaults falls back to default config rooted at the working
// directory when no workspace is found and none was requested.
func loadWorkspaceOrDefaults(f workspaceFlags) (*workspaceCtx, error) {
	if strings.TrimSpace(f.workspace) == "" {
		if _, err := resolveWorkspaceRoot(""); err != nil {
			wd, werr := os.Getwd()
			if werr != nil {
				return nil, werr
			}
			return newWorkspaceCtx(wd, domain.DefaultConfig(), f)
		}
	}
	return loadWorkspace(f)
}

func parseVersionMaps(in []string) (domain.Versions, error) {
	out := make(domain.Versions, 0, len(in))
	for _, m := range in {
		id, path, ok := strings.Cut(m, "=")
		if !ok {
			return nil, &domain.OpError{
				Op:   "cli.map",
				Kind: domain.KindInvalidArgument,
				Err:  fmt.Errorf("--map %q: expected id=path: %w", m, domain.ErrInvalidArgument),
			}
		}
		out = append(out, domain.Version{ID: strings.TrimSpace(id), Path: strings.TrimSpace(path)})
	}
	if err := out.Validate(); err != nil {
		return nil, &domain.OpError{Op: "cli.map", Kind: domain.KindInvalidArgument, Err: err}
	}
	return out, nil
}

func printResolved(w io.Writer, rs []resolveResult, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rs)
	case "pretty", "":
		for _, r := range rs {
			fmt.Fprintln(w, r.Resolved)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

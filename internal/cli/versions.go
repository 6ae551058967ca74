package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/navlink/internal/domain"
)

func versionsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "versions",
		Short: "Inspect the version registry",
	}

	c.AddCommand(versionsListCmd())
	return c
}

func versionsListCmd() *cobra.Command {
	var wf workspaceFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List versions in match order",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(wf)
			if err != nil {
				return err
			}

			w := c.OutOrStdout()
			if ws.versionsPath == "" {
				fmt.Fprintln(w, "(no version registry found)")
				return nil
			}

			vs, err := ws.versions.LoadVersions(ws.versionsPath)
			if err != nil {
				return err
			}

			rel, _ := filepath.Rel(ws.root, ws.versionsPath)
			fmt.Fprintf(w, "Registry: %s\n", rel)
			fmt.Fprintf(w, "Match:    %s\n\n", ws.resolver.Policy())

			for _, v := range vs {
				fmt.Fprintf(w, "- %s  %s", v.ID, v.Path)
				if domain.IsDefaultMount(v.Path, ws.resolver.Roots()) {
					fmt.Fprint(w, "  (default mount)")
				}
				if v.IsLast {
					fmt.Fprint(w, "  (latest)")
				}
				fmt.Fprintln(w)
			}
			return nil
		},
	}

	wf.register(cmd)
	return cmd
}

package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func sidebarsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "sidebars",
		Short: "Inspect sidebars in a workspace",
	}

	c.AddCommand(sidebarsListCmd())
	return c
}

func sidebarsListCmd() *cobra.Command {
	var workspace string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sidebars",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspaceFlags{workspace: workspace})
			if err != nil {
				return err
			}

			refs, err := ws.sidebars.ListSidebars(ws.root)
			if err != nil {
				return err
			}

			w := c.OutOrStdout()
			if len(refs) == 0 {
				fmt.Fprintln(w, "(no sidebars found)")
				return nil
			}

			fmt.Fprintf(w, "Workspace: %s\n\n", ws.root)
			broken := 0
			for _, r := range refs {
				rel, _ := filepath.Rel(ws.root, r.Path)
				if r.Err != nil {
					broken++
					fmt.Fprintf(w, "! %s: %v\n", rel, r.Err)
					continue
				}
				fmt.Fprintf(w, "- %s  (%s)\n", r.ID, rel)
			}
			if broken > 0 {
				return fmt.Errorf("%d sidebar file(s) failed to load", broken)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	return cmd
}

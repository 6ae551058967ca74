package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/navlink/internal/infra/fsworkspace"
	"github.com/aalvaropc/navlink/internal/usecase"
)

func initCmd() *cobra.Command {
	var path string
	var force bool
	var baseURL string

	c := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a navlink workspace (navlink.yaml, versions.yaml, sidebars/)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("invalid path: %w", err)
			}

			uc := usecase.NewInitWorkspace(fsworkspace.NewInitializer())
			if err := uc.Execute(root, baseURL, force); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Workspace ready at %s\n", root)
			return nil
		},
	}

	c.Flags().StringVar(&path, "path", ".", "Directory to initialize")
	c.Flags().BoolVar(&force, "force", false, "Overwrite existing scaffold files")
	c.Flags().StringVar(&baseURL, "base-url", "", "Site base URL written to navlink.yaml (default http://localhost:3000)")
	return c
}

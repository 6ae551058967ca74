package cli

import (
	"github.com/spf13/cobra"

	"github.com/aalvaropc/navlink/internal/domain"
	"github.com/aalvaropc/navlink/internal/infra/logger"
	"github.com/aalvaropc/navlink/internal/ui/tui"
	"github.com/aalvaropc/navlink/internal/usecase"
)

func browseCmd() *cobra.Command {
	var wf workspaceFlags
	var vf viewFlags

	c := &cobra.Command{
		Use:   "browse <sidebar>",
		Short: "Browse a rendered sidebar interactively (tab cycles versions)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(wf)
			if err != nil {
				return err
			}

			var ids []string
			if ws.versionsPath != "" {
				vs, err := ws.versions.LoadVersions(ws.versionsPath)
				if err != nil {
					return err
				}
				for _, v := range vs {
					if !domain.IsDefaultMount(v.Path, ws.resolver.Roots()) {
						ids = append(ids, v.ID)
					}
				}
			}

			debug, _ := cmd.Flags().GetBool("debug")
			return tui.Run(tui.Deps{
				Renderer: usecase.NewRenderSidebar(ws.sidebars, ws.versions, ws.resolver),
				Query:    ws.query(args[0], vf),
				Versions: ids,
				Logger:   logger.L(),
				Debug:    debug,
			})
		},
	}

	wf.register(c)
	vf.register(c)
	return c
}

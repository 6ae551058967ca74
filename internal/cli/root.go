package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/navlink/internal/buildinfo"
	"github.com/aalvaropc/navlink/internal/ctxlog"
	"github.com/aalvaropc/navlink/internal/infra/logger"
	"github.com/aalvaropc/navlink/internal/infra/workspacefinder"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool
	var cleanup func() error

	cmd := &cobra.Command{
		Use:          "navlink",
		Short:        "navlink resolves versioned documentation links and checks sidebars",
		SilenceUsage: true,
		PersistentPreRun: func(c *cobra.Command, _ []string) {
			wd, err := os.Getwd()
			if err != nil {
				return
			}
			wd, _ = filepath.Abs(wd)

			// Only log to a file inside a workspace; elsewhere logs are discarded.
			root, ferr := workspacefinder.NewFinder().FindRoot(wd)
			if ferr != nil || root == "" {
				return
			}
			cleanup, _ = logger.Setup(logger.Config{Root: root, Debug: debug, Version: buildinfo.Version})
			logger.L().Debug("cli.start", "command", c.CommandPath(), "workspace", root)
			c.SetContext(ctxlog.WithLogger(c.Context(), logger.L()))
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if cleanup != nil {
				_ = cleanup()
			}
		},
		RunE: func(c *cobra.Command, _ []string) error {
			return c.Help()
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging to .navlink/logs/navlink.log")

	cmd.AddCommand(
		initCmd(),
		versionCmd(),
		resolveCmd(),
		validateCmd(),
		renderCmd(),
		checkCmd(),
		sidebarsCmd(),
		versionsCmd(),
		browseCmd(),
	)
	return cmd
}

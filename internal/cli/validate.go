package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/navlink/internal/usecase"
)

func validateCmd() *cobra.Command {
	var wf workspaceFlags
	var format string

	c := &cobra.Command{
		Use:   "validate <sidebar>",
		Short: "Check a sidebar loads and every link resolves in each version (no HTTP)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(wf)
			if err != nil {
				return err
			}

			uc := usecase.NewValidateSidebar(ws.sidebars, ws.versions, ws.resolver)
			res, err := uc.Execute(cmd.Context(), ws.query(args[0], viewFlags{}))
			if err != nil {
				return err
			}

			if err := printValidation(cmd.OutOrStdout(), res, format); err != nil {
				return err
			}
			if !res.OK() {
				return fmt.Errorf("validation failed (%d issue(s))", len(res.Issues))
			}
			return nil
		},
	}

	wf.register(c)
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

func printValidation(w io.Writer, res usecase.ValidationResult, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "pretty", "":
		fmt.Fprintf(w, "Sidebar:  %s (%s)\n", res.SidebarID, res.SidebarPath)
		fmt.Fprintf(w, "Contexts: %s\n", strings.Join(res.Contexts, ", "))
		fmt.Fprintf(w, "Checked:  %d link(s), %d external skipped\n", res.Checked, res.Skipped)
		if res.OK() {
			fmt.Fprintln(w, "OK")
			return nil
		}
		fmt.Fprintln(w)
		for _, is := range res.Issues {
			fmt.Fprintf(w, "- [%s] %s %q %s\n  %s\n", strings.Join(is.Versions, ","), is.Field, is.Label, is.Href, is.Error)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

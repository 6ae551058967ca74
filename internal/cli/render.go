package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/navlink/internal/domain"
	"github.com/aalvaropc/navlink/internal/usecase"
)

// viewFlags select where a sidebar is looked at from.
type viewFlags struct {
	location string
	version  string
}

func (f *viewFlags) register(c *cobra.Command) {
	c.Flags().StringVarP(&f.location, "location", "l", "", "Page path the sidebar is shown on")
	c.Flags().StringVar(&f.version, "version", "", "Version id; views the sidebar from that version's mount (overrides --location)")
}

func (ws *workspaceCtx) query(sidebarID string, v viewFlags) usecase.SidebarQuery {
	return usecase.SidebarQuery{
		Root:         ws.root,
		SidebarID:    sidebarID,
		VersionsPath: ws.versionsPath,
		Location:     v.location,
		Version:      v.version,
	}
}

func renderCmd() *cobra.Command {
	var wf workspaceFlags
	var vf viewFlags
	var format string

	c := &cobra.Command{
		Use:   "render <sidebar>",
		Short: "Print a sidebar with every href resolved for a location or version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(wf)
			if err != nil {
				return err
			}

			uc := usecase.NewRenderSidebar(ws.sidebars, ws.versions, ws.resolver)
			out, err := uc.Execute(cmd.Context(), ws.query(args[0], vf))
			if err != nil {
				return err
			}
			return printRendered(cmd.OutOrStdout(), out, format)
		},
	}

	wf.register(c)
	vf.register(c)
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

func printRendered(w io.Writer, sb domain.RenderedSidebar, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sb)
	case "pretty", "":
		printPrettyRendered(w, sb)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printPrettyRendered(w io.Writer, sb domain.RenderedSidebar) {
	version := sb.Version
	if version == "" {
		version = "(default)"
	}
	fmt.Fprintf(w, "Sidebar:  %s\n", sb.ID)
	fmt.Fprintf(w, "Location: %s\n", sb.Location)
	fmt.Fprintf(w, "Version:  %s\n\n", version)

	for _, f := range domain.Flatten(sb.Items) {
		n := f.Node
		indent := strings.Repeat("  ", f.Depth)
		label := n.Label
		if label == "" {
			label = n.ID
		}

		switch n.Type {
		case domain.NodeCategory:
			if n.ResolvedHref != "" {
				fmt.Fprintf(w, "%s▸ %s  → %s\n", indent, label, n.ResolvedHref)
			} else {
				fmt.Fprintf(w, "%s▸ %s\n", indent, label)
			}
		default:
			line := fmt.Sprintf("%s- %s  → %s", indent, label, n.ResolvedHref)
			if n.Error != "" {
				line += "  [unresolved: " + n.Error + "]"
			}
			fmt.Fprintln(w, line)
		}
	}
}
